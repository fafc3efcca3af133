package config

// FoundryConfig represents the parts of foundry.toml hoist reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig   `toml:"profile"`
	RpcEndpoints map[string]string          `toml:"rpc_endpoints"`
	Etherscan    map[string]EtherscanConfig `toml:"etherscan,omitempty"`
}

// EtherscanConfig represents Etherscan configuration for a network
// This matches Foundry's expected structure
type EtherscanConfig struct {
	Key string `toml:"key,omitempty"`
	URL string `toml:"url,omitempty"`
}

// ProfileConfig represents a profile's foundry configuration
type ProfileConfig struct {
	SrcPath string       `toml:"src,omitempty"`
	OutPath string       `toml:"out,omitempty"`
	Hoist   *HoistConfig `toml:"hoist,omitempty"`
}

// HoistConfig is the [profile.<name>.hoist] table. Values may reference
// environment variables as ${VAR}.
type HoistConfig struct {
	Contract      string `toml:"contract,omitempty"`
	Kind          string `toml:"kind,omitempty"`
	Initializer   string `toml:"initializer,omitempty"`
	ProxyAdmin    string `toml:"proxy_admin,omitempty"`
	PrivateKey    string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Confirmations uint64 `toml:"confirmations,omitempty"`
}

// OutDir returns the artifact directory for a profile, falling back to the
// default profile and then to "out".
func (f *FoundryConfig) OutDir(profile string) string {
	if f != nil {
		if p, ok := f.Profile[profile]; ok && p.OutPath != "" {
			return p.OutPath
		}
		if p, ok := f.Profile["default"]; ok && p.OutPath != "" {
			return p.OutPath
		}
	}
	return "out"
}

// Hoist returns the hoist table for a profile, or the default profile's.
func (f *FoundryConfig) Hoist(profile string) *HoistConfig {
	if f == nil {
		return nil
	}
	if p, ok := f.Profile[profile]; ok && p.Hoist != nil {
		return p.Hoist
	}
	if p, ok := f.Profile["default"]; ok {
		return p.Hoist
	}
	return nil
}
