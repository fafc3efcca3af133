package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/models"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

func TestListDeployments(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	deployments := []*models.ProxyDeployment{
		{ID: "c", Namespace: "default", ChainID: 31337, ContractName: "Token", Kind: domain.ProxyKindUUPS, CreatedAt: now},
		{ID: "b", Namespace: "default", ChainID: 31337, ContractName: "Box", Kind: domain.ProxyKindTransparent, CreatedAt: now.Add(time.Minute)},
		{ID: "a", Namespace: "default", ChainID: 31337, ContractName: "Box", Kind: domain.ProxyKindTransparent, CreatedAt: now},
	}

	t.Run("filters by active namespace and network", func(t *testing.T) {
		store := new(MockDeploymentStore)
		store.On("ListDeployments", ctx, domain.DeploymentFilter{Namespace: "default", ChainID: 31337}).
			Return(append([]*models.ProxyDeployment(nil), deployments...), nil)

		uc := usecase.NewListDeployments(testConfig(), store, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{})
		require.NoError(t, err)

		require.Len(t, result.Deployments, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{
			result.Deployments[0].ID, result.Deployments[1].ID, result.Deployments[2].ID,
		})
		assert.Equal(t, 3, result.Summary.Total)
		assert.Equal(t, 3, result.Summary.ByNamespace["default"])
		assert.Equal(t, 3, result.Summary.ByChain[31337])
		assert.Equal(t, 2, result.Summary.ByKind[domain.ProxyKindTransparent])
		assert.Equal(t, 1, result.Summary.ByKind[domain.ProxyKindUUPS])
		store.AssertExpectations(t)
	})

	t.Run("all namespaces without network", func(t *testing.T) {
		cfg := testConfig()
		cfg.Network = nil
		store := new(MockDeploymentStore)
		store.On("ListDeployments", ctx, domain.DeploymentFilter{ContractName: "Box"}).
			Return([]*models.ProxyDeployment{}, nil)

		uc := usecase.NewListDeployments(cfg, store, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{ContractName: "Box", AllNamespaces: true})
		require.NoError(t, err)
		assert.Empty(t, result.Deployments)
		assert.Equal(t, 0, result.Summary.Total)
		store.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		store := new(MockDeploymentStore)
		store.On("ListDeployments", ctx, domain.DeploymentFilter{Namespace: "default", ChainID: 31337}).
			Return(nil, errors.New("corrupt manifest"))

		uc := usecase.NewListDeployments(testConfig(), store, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.ListDeploymentsParams{})
		assert.EqualError(t, err, "corrupt manifest")
	})
}

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()
	record := &models.ProxyDeployment{ID: "0f3a9c1e-0000-4000-8000-000000000000", ContractName: "Box"}

	t.Run("by id", func(t *testing.T) {
		store := new(MockDeploymentStore)
		store.On("GetDeployment", ctx, "0f3a9c1e").Return(record, nil)

		uc := usecase.NewShowDeployment(testConfig(), store, &MockProgressSink{})
		got, err := uc.Run(ctx, usecase.ShowDeploymentParams{Ref: "0f3a9c1e"})
		require.NoError(t, err)
		assert.Same(t, record, got)
	})

	t.Run("by proxy address", func(t *testing.T) {
		addr := "0x5FbDB2315678afecb367f032d93F642f64180aa3"
		store := new(MockDeploymentStore)
		store.On("GetDeploymentByAddress", ctx, uint64(31337), addr).Return(record, nil)

		uc := usecase.NewShowDeployment(testConfig(), store, &MockProgressSink{})
		got, err := uc.Run(ctx, usecase.ShowDeploymentParams{Ref: addr})
		require.NoError(t, err)
		assert.Same(t, record, got)
	})

	t.Run("not found", func(t *testing.T) {
		store := new(MockDeploymentStore)
		store.On("GetDeployment", ctx, "nope").Return(nil, domain.ErrNotFound)

		uc := usecase.NewShowDeployment(testConfig(), store, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{Ref: "nope"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty ref", func(t *testing.T) {
		uc := usecase.NewShowDeployment(testConfig(), new(MockDeploymentStore), &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{})
		assert.Error(t, err)
	})
}
