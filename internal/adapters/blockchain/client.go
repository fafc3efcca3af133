package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
)

// Backend is the chain access needed to deploy contracts and follow receipts.
// *ethclient.Client and the simulated backend client both satisfy it.
type Backend interface {
	bind.ContractBackend
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Connector dials the configured network on first use and verifies its chain ID
type Connector struct {
	network *domain.Network
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID uint64
	closer  func()
}

// NewConnector creates a connector for the network in the runtime config
func NewConnector(cfg *config.RuntimeConfig, log *slog.Logger) *Connector {
	return &Connector{
		network: cfg.Network,
		log:     log.With("component", "Connector"),
	}
}

// NewConnectorWithBackend wraps an already connected backend
func NewConnectorWithBackend(backend Backend, network *domain.Network, log *slog.Logger) *Connector {
	return &Connector{
		network: network,
		backend: backend,
		log:     log.With("component", "Connector"),
	}
}

// Connect returns the backend and the verified chain ID
func (c *Connector) Connect(ctx context.Context) (Backend, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil && c.chainID != 0 {
		return c.backend, c.chainID, nil
	}
	if c.network == nil {
		return nil, 0, domain.ErrNoNetwork
	}

	if c.backend == nil {
		c.log.Debug("dialing rpc", "network", c.network.Name)
		client, err := ethclient.DialContext(ctx, c.network.RPCURL)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.backend = client
		c.closer = client.Close
	}

	networkChainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get chain ID: %w", err)
	}

	// a zero chain ID in the network config accepts whatever the node reports
	if c.network.ChainID != 0 && networkChainID.Uint64() != c.network.ChainID {
		return nil, 0, fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, c.network.ChainID, networkChainID.Uint64())
	}
	c.chainID = networkChainID.Uint64()

	return c.backend, c.chainID, nil
}

// Close releases a dialed connection
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closer != nil {
		c.closer()
		c.closer = nil
		c.backend = nil
		c.chainID = 0
	}
}
