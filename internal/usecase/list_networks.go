package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name        string
	ChainID     uint64
	ExplorerURL string
	Error       error
}

// maxConcurrentLookups bounds the RPC calls made while listing
const maxConcurrentLookups = 4

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
	}
}

// Run resolves every configured network. Per-network failures are reported
// in the result rather than failing the listing.
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := uc.resolver.GetNetworks(ctx)
	networks := make([]NetworkStatus, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, name := range names {
		g.Go(func() error {
			status := NetworkStatus{Name: name}
			info, err := uc.resolver.ResolveNetwork(gctx, name)
			if err != nil {
				status.Error = err
			} else {
				status.ChainID = info.ChainID
				status.ExplorerURL = info.ExplorerURL
			}
			networks[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
