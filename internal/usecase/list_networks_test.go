package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

func TestListNetworks(t *testing.T) {
	ctx := context.Background()

	resolver := new(MockNetworkResolver)
	resolver.On("GetNetworks", ctx).Return([]string{"anvil", "down", "sepolia"})
	resolver.On("ResolveNetwork", mock.Anything, "anvil").Return(&domain.Network{Name: "anvil", ChainID: 31337}, nil)
	resolver.On("ResolveNetwork", mock.Anything, "down").Return(nil, errors.New("connection refused"))
	resolver.On("ResolveNetwork", mock.Anything, "sepolia").
		Return(&domain.Network{Name: "sepolia", ChainID: 11155111, ExplorerURL: "https://sepolia.etherscan.io"}, nil)

	result, err := usecase.NewListNetworks(resolver).Run(ctx, usecase.ListNetworksParams{})
	require.NoError(t, err)
	require.Len(t, result.Networks, 3)

	assert.Equal(t, "anvil", result.Networks[0].Name)
	assert.Equal(t, uint64(31337), result.Networks[0].ChainID)

	assert.Equal(t, "down", result.Networks[1].Name)
	assert.EqualError(t, result.Networks[1].Error, "connection refused")

	assert.Equal(t, uint64(11155111), result.Networks[2].ChainID)
	assert.Equal(t, "https://sepolia.etherscan.io", result.Networks[2].ExplorerURL)
	resolver.AssertExpectations(t)
}
