package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
)

// DataDirName is the per-project directory hoist writes to
const DataDirName = ".hoist"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		Namespace:      v.GetString("namespace"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		LogFile:        ExpandEnv(v.GetString("log_file")),
	}

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig

	cfg.Deploy = buildDeployConfig(v, foundryConfig.Hoist(cfg.Namespace))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	// Resolve network if specified
	if rpcURL := ExpandEnv(v.GetString("rpc_url")); rpcURL != "" {
		cfg.Network = &domain.Network{Name: "custom", RPCURL: rpcURL}
	} else if networkName := v.GetString("network"); networkName != "" {
		resolver := NewNetworkResolver(cfg.DataDir, foundryConfig)
		network, err := resolver.Resolve(networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// buildDeployConfig merges flags/env (viper) over the foundry.toml hoist table.
func buildDeployConfig(v *viper.Viper, table *config.HoistConfig) config.DeployConfig {
	if table == nil {
		table = &config.HoistConfig{}
	}

	dc := config.DeployConfig{
		Contract:      firstNonEmpty(v.GetString("contract"), table.Contract),
		Kind:          firstNonEmpty(v.GetString("kind"), table.Kind),
		Initializer:   firstNonEmpty(v.GetString("initializer"), table.Initializer),
		NoInitializer: v.GetBool("no_initializer"),
		InitArgs:      v.GetStringSlice("arg"),
		ProxyAdmin:    firstNonEmpty(v.GetString("proxy_admin"), table.ProxyAdmin),
		PrivateKey:    firstNonEmpty(v.GetString("private_key"), table.PrivateKey),
		Confirmations: v.GetUint64("confirmations"),
		PollInterval:  v.GetDuration("poll_interval"),
		Build:         v.GetBool("build"),
		DryRun:        v.GetBool("dry_run"),

		UUPSProxyArtifact:        v.GetString("uups_proxy_artifact"),
		TransparentProxyArtifact: v.GetString("transparent_proxy_artifact"),
	}
	if !v.IsSet("confirmations") {
		switch {
		case table.Confirmations > 0:
			dc.Confirmations = table.Confirmations
		case dc.Confirmations == 0:
			dc.Confirmations = 1
		}
	}

	dc.Contract = ExpandEnv(dc.Contract)
	dc.Kind = ExpandEnv(dc.Kind)
	dc.Initializer = ExpandEnv(dc.Initializer)
	dc.ProxyAdmin = ExpandEnv(dc.ProxyAdmin)
	dc.PrivateKey = ExpandEnv(dc.PrivateKey)
	return dc
}

func validate(cfg *config.RuntimeConfig) error {
	var result *multierror.Error

	if cfg.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout))
	}
	if cfg.Deploy.PollInterval <= 0 {
		result = multierror.Append(result, fmt.Errorf("poll_interval must be positive, got %s", cfg.Deploy.PollInterval))
	}
	if cfg.Deploy.Confirmations == 0 {
		result = multierror.Append(result, fmt.Errorf("confirmations must be at least 1"))
	}
	if _, err := domain.ParseProxyKind(cfg.Deploy.Kind); err != nil {
		result = multierror.Append(result, fmt.Errorf("%w: %q", err, cfg.Deploy.Kind))
	}

	return result.ErrorOrNil()
}

// FindProjectRoot walks up from current directory to find foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		foundryToml := filepath.Join(dir, "foundry.toml")
		if _, err := os.Stat(foundryToml); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	v.SetEnvPrefix("HOIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("namespace", "default")
	v.SetDefault("timeout", 5*time.Minute)
	v.SetDefault("poll_interval", 2*time.Second)
	v.SetDefault("build", true)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)
	v.SetDefault("uups_proxy_artifact", "ERC1967Proxy")
	v.SetDefault("transparent_proxy_artifact", "TransparentUpgradeableProxy")

	// Config file is optional
	_ = v.ReadInConfig()

	if cmd != nil {
		bind := func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		}
		cmd.Flags().VisitAll(bind)
		cmd.InheritedFlags().VisitAll(bind)
	}

	return v
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
