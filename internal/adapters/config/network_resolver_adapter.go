package config

import (
	"context"

	"github.com/trebuchet-org/hoist/internal/config"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.Names()
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domain.Network, error) {
	return a.resolver.ResolveContext(ctx, networkName)
}

var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
