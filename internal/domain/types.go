package domain

// ProxyKind selects the proxy contract wrapped around an implementation
type ProxyKind string

const (
	ProxyKindAuto        ProxyKind = "auto"
	ProxyKindUUPS        ProxyKind = "uups"
	ProxyKindTransparent ProxyKind = "transparent"
)

// ParseProxyKind accepts "", "auto", "uups" and "transparent" (case-sensitive).
func ParseProxyKind(s string) (ProxyKind, error) {
	switch ProxyKind(s) {
	case "", ProxyKindAuto:
		return ProxyKindAuto, nil
	case ProxyKindUUPS, ProxyKindTransparent:
		return ProxyKind(s), nil
	}
	return "", ErrInvalidProxyKind
}

// Network represents a resolved network
type Network struct {
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ChainID     uint64 `json:"chainId"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// DeploymentFilter narrows a manifest listing. Zero values match everything.
type DeploymentFilter struct {
	Namespace    string
	ChainID      uint64
	ContractName string
}
