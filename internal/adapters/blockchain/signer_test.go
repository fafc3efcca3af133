package blockchain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
)

func TestNewTransactor(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)
	hexKey := hexutil.Encode(crypto.FromECDSA(key))

	t.Run("with 0x prefix", func(t *testing.T) {
		opts, addr, err := NewTransactor(hexKey, 31337)
		require.NoError(t, err)
		assert.Equal(t, want, addr)
		assert.Equal(t, want, opts.From)
	})

	t.Run("without prefix", func(t *testing.T) {
		_, addr, err := NewTransactor(hexKey[2:], 1)
		require.NoError(t, err)
		assert.Equal(t, want, addr)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := NewTransactor("  ", 1)
		assert.ErrorIs(t, err, domain.ErrNoSigner)
	})

	t.Run("unresolved placeholder", func(t *testing.T) {
		_, _, err := NewTransactor("${DEPLOYER_KEY}", 1)
		assert.ErrorIs(t, err, domain.ErrNoSigner)
	})

	t.Run("invalid hex", func(t *testing.T) {
		_, _, err := NewTransactor("0xnothex", 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNoSigner)
	})
}

func TestConnector_Connect(t *testing.T) {
	t.Run("no network", func(t *testing.T) {
		c := NewConnector(&config.RuntimeConfig{}, discardLogger())
		_, _, err := c.Connect(t.Context())
		assert.ErrorIs(t, err, domain.ErrNoNetwork)
	})

	t.Run("accepts any chain when unset", func(t *testing.T) {
		c := NewConnectorWithBackend(&fakeBackend{chainID: 10}, &domain.Network{Name: "op"}, discardLogger())
		_, chainID, err := c.Connect(t.Context())
		require.NoError(t, err)
		assert.Equal(t, uint64(10), chainID)
	})

	t.Run("mismatch", func(t *testing.T) {
		c := NewConnectorWithBackend(&fakeBackend{chainID: 10}, &domain.Network{Name: "base", ChainID: 8453}, discardLogger())
		_, _, err := c.Connect(t.Context())
		assert.ErrorIs(t, err, domain.ErrChainIDMismatch)
	})
}
