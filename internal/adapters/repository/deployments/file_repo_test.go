package deployments_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hoist/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/models"
)

func newDeployment(id string, chainID uint64, name, proxy string, created time.Time) *models.ProxyDeployment {
	return &models.ProxyDeployment{
		ID:                    id,
		Namespace:             "default",
		ChainID:               chainID,
		ContractName:          name,
		ArtifactPath:          "src/" + name + ".sol:" + name,
		Kind:                  domain.ProxyKindUUPS,
		ProxyAddress:          proxy,
		ImplementationAddress: "0x9999999999999999999999999999999999999999",
		BytecodeHash:          common.HexToHash("0xaa").Hex(),
		CreatedAt:             created,
	}
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("save and retrieve", func(t *testing.T) {
		dataDir := t.TempDir()
		store := deployments.NewFileRepository(dataDir)

		dep := newDeployment("0f3a9c1e-aaaa", 31337, "Box", "0x5FbDB2315678afecb367f032d93F642f64180aa3", now)
		require.NoError(t, store.SaveDeployment(ctx, dep))

		_, err := os.Stat(filepath.Join(dataDir, deployments.DeploymentsDir, "31337.json"))
		require.NoError(t, err)

		got, err := store.GetDeployment(ctx, dep.ID)
		require.NoError(t, err)
		assert.Equal(t, dep, got)

		// a fresh store reads the file back
		reloaded, err := deployments.NewFileRepository(dataDir).GetDeployment(ctx, dep.ID)
		require.NoError(t, err)
		assert.Equal(t, dep.ProxyAddress, reloaded.ProxyAddress)
		assert.True(t, dep.CreatedAt.Equal(reloaded.CreatedAt))
	})

	t.Run("id prefix", func(t *testing.T) {
		store := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, store.SaveDeployment(ctx, newDeployment("0f3a9c1e-aaaa", 1, "Box", "0x01", now)))
		require.NoError(t, store.SaveDeployment(ctx, newDeployment("0f3b0000-bbbb", 1, "Box", "0x02", now)))

		got, err := store.GetDeployment(ctx, "0f3a")
		require.NoError(t, err)
		assert.Equal(t, "0f3a9c1e-aaaa", got.ID)

		_, err = store.GetDeployment(ctx, "0f3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")

		_, err = store.GetDeployment(ctx, "ffff")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("by address is case insensitive", func(t *testing.T) {
		store := deployments.NewFileRepository(t.TempDir())
		proxy := "0x5FbDB2315678afecb367f032d93F642f64180aa3"
		require.NoError(t, store.SaveDeployment(ctx, newDeployment("a", 31337, "Box", proxy, now)))

		got, err := store.GetDeploymentByAddress(ctx, 31337, "0x5fbdb2315678afecb367f032d93f642f64180aa3")
		require.NoError(t, err)
		assert.Equal(t, "a", got.ID)

		got, err = store.GetDeploymentByAddress(ctx, 0, proxy)
		require.NoError(t, err)
		assert.Equal(t, "a", got.ID)

		_, err = store.GetDeploymentByAddress(ctx, 1, proxy)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list with filter", func(t *testing.T) {
		store := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, store.SaveDeployment(ctx, newDeployment("a", 1, "Box", "0x01", now)))
		require.NoError(t, store.SaveDeployment(ctx, newDeployment("b", 1, "Token", "0x02", now)))
		require.NoError(t, store.SaveDeployment(ctx, newDeployment("c", 137, "Box", "0x03", now)))

		all, err := store.ListDeployments(ctx, domain.DeploymentFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		boxes, err := store.ListDeployments(ctx, domain.DeploymentFilter{ContractName: "Box", ChainID: 1})
		require.NoError(t, err)
		require.Len(t, boxes, 1)
		assert.Equal(t, "a", boxes[0].ID)

		none, err := store.ListDeployments(ctx, domain.DeploymentFilter{Namespace: "live"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("find implementation picks latest on chain", func(t *testing.T) {
		store := deployments.NewFileRepository(t.TempDir())
		older := newDeployment("old", 1, "Box", "0x01", now.Add(-time.Hour))
		newer := newDeployment("new", 1, "Box", "0x02", now)
		newer.ImplementationAddress = "0x8888888888888888888888888888888888888888"
		other := newDeployment("other", 5, "Box", "0x03", now.Add(time.Hour))
		for _, d := range []*models.ProxyDeployment{older, newer, other} {
			require.NoError(t, store.SaveDeployment(ctx, d))
		}

		got, err := store.FindImplementation(ctx, 1, common.HexToHash("0xaa"))
		require.NoError(t, err)
		assert.Equal(t, "new", got.ID)
		assert.Equal(t, newer.ImplementationAddress, got.ImplementationAddress)

		_, err = store.FindImplementation(ctx, 1, common.HexToHash("0xbb"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		store := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, store.SaveDeployment(ctx, newDeployment("a", 1, "Box", "0x01", now)))

		got, err := store.GetDeployment(ctx, "a")
		require.NoError(t, err)
		got.ContractName = "Mutated"

		again, err := store.GetDeployment(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "Box", again.ContractName)
	})

	t.Run("failed write leaves no record behind", func(t *testing.T) {
		dataDir := t.TempDir()
		store := deployments.NewFileRepository(dataDir)
		saved := newDeployment("0f3a9c1e-aaaa", 1, "Box", "0x01", now)
		require.NoError(t, store.SaveDeployment(ctx, saved))

		// a file where the manifest directory should be
		dir := filepath.Join(dataDir, deployments.DeploymentsDir)
		require.NoError(t, os.RemoveAll(dir))
		require.NoError(t, os.WriteFile(dir, nil, 0644))

		fresh := newDeployment("7b21d0aa-bbbb", 1, "Vault", "0x02", now)
		require.Error(t, store.SaveDeployment(ctx, fresh))

		_, err := store.GetDeployment(ctx, fresh.ID)
		assert.Error(t, err)
		_, err = store.GetDeploymentByAddress(ctx, 1, fresh.ProxyAddress)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		renamed := *saved
		renamed.ContractName = "BoxV2"
		require.Error(t, store.SaveDeployment(ctx, &renamed))

		got, err := store.GetDeployment(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Box", got.ContractName)
	})

	t.Run("corrupt manifest", func(t *testing.T) {
		dataDir := t.TempDir()
		dir := filepath.Join(dataDir, deployments.DeploymentsDir)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "1.json"), []byte("{"), 0644))

		_, err := deployments.NewFileRepository(dataDir).ListDeployments(ctx, domain.DeploymentFilter{})
		assert.Error(t, err)
	})
}
