package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/hoist/internal/domain/config"
)

// loadFoundryConfig loads and parses foundry.toml
func loadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	// Load .env files first for variable expansion
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	cfg := &config.FoundryConfig{}
	if _, err := toml.DecodeFile(foundryPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	if cfg.RpcEndpoints == nil {
		cfg.RpcEndpoints = make(map[string]string)
	}
	if cfg.Etherscan == nil {
		cfg.Etherscan = make(map[string]config.EtherscanConfig)
	}
	if cfg.Profile == nil {
		cfg.Profile = make(map[string]config.ProfileConfig)
	}

	for name, url := range cfg.RpcEndpoints {
		cfg.RpcEndpoints[name] = ExpandEnv(url)
	}
	for network, ec := range cfg.Etherscan {
		ec.URL = ExpandEnv(ec.URL)
		ec.Key = ExpandEnv(ec.Key)
		cfg.Etherscan[network] = ec
	}

	return cfg, nil
}
