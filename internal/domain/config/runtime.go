package config

import (
	"path/filepath"
	"time"

	"github.com/trebuchet-org/hoist/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Namespace string          // Maps to foundry profile
	Network   *domain.Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration
	LogFile        string

	Deploy DeployConfig

	// Resolved configurations
	FoundryConfig *FoundryConfig
}

// DeployConfig holds the settings of the deploy command after flags, env and
// foundry.toml have been merged
type DeployConfig struct {
	Contract      string
	Kind          string
	Initializer   string
	NoInitializer bool
	InitArgs      []string
	ProxyAdmin    string
	PrivateKey    string //nolint:gosec // resolved at runtime, never persisted

	Confirmations uint64
	PollInterval  time.Duration
	Build         bool
	DryRun        bool

	// Artifact names used for the proxy contracts themselves
	UUPSProxyArtifact        string
	TransparentProxyArtifact string
}

// ArtifactsDir returns the directory holding the compiled artifacts.
func (c *RuntimeConfig) ArtifactsDir() string {
	out := c.FoundryConfig.OutDir(c.Namespace)
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(c.ProjectRoot, out)
}
