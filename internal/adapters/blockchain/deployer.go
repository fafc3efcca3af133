package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/domain/models"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// ProxyDeployer deploys an implementation contract and an upgradeable proxy in front of it
type ProxyDeployer struct {
	privateKey string
	connector  *Connector
	waiter     *ConfirmationWaiter
	store      usecase.DeploymentStore
	log        *slog.Logger
}

// NewProxyDeployer creates a deployer signing with the configured key
func NewProxyDeployer(
	cfg *config.RuntimeConfig,
	connector *Connector,
	waiter *ConfirmationWaiter,
	store usecase.DeploymentStore,
	log *slog.Logger,
) *ProxyDeployer {
	return &ProxyDeployer{
		privateKey: cfg.Deploy.PrivateKey,
		connector:  connector,
		waiter:     waiter,
		store:      store,
		log:        log.With("component", "ProxyDeployer"),
	}
}

// DeployUpgradeableProxy submits the implementation (unless an identical one
// is already live on this chain), waits for it, then submits the proxy. It
// returns as soon as the proxy transaction has been accepted.
func (d *ProxyDeployer) DeployUpgradeableProxy(ctx context.Context, req *models.ProxyDeploymentRequest) (*models.DeploymentHandle, error) {
	backend, chainID, err := d.connector.Connect(ctx)
	if errors.Is(err, domain.ErrNoNetwork) {
		return nil, fmt.Errorf("%w: use --network or --rpc-url", err)
	}
	if err != nil {
		return nil, &domain.DeploymentRejectedError{Stage: domain.StageImplementation, Err: err}
	}

	opts, deployer, err := NewTransactor(d.privateKey, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	admin := req.Admin
	if req.Kind == domain.ProxyKindTransparent && admin == (common.Address{}) {
		admin = deployer
	}

	handle := &models.DeploymentHandle{
		ChainID:  chainID,
		Kind:     req.Kind,
		Deployer: deployer,
	}
	if req.Kind == domain.ProxyKindTransparent {
		handle.Admin = admin
	}

	// the proxy constructor is checked before anything is sent
	placeholder := common.Address{}
	if _, err := req.Proxy.ABI.Pack("", d.proxyArgs(req, placeholder, admin)...); err != nil {
		return nil, fmt.Errorf("proxy artifact %s does not accept %s constructor arguments: %w",
			req.Proxy.FullName(), req.Kind, err)
	}

	implAddr, reused, err := d.findImplementation(ctx, backend, chainID, req.Implementation)
	if err != nil {
		return nil, err
	}

	if reused {
		d.log.Info("reusing implementation", "contract", req.Implementation.Name, "address", implAddr.Hex())
		handle.ImplementationAddress = implAddr
		handle.ImplementationReused = true
	} else {
		addr, tx, _, err := bind.DeployContract(opts, req.Implementation.ABI, req.Implementation.Bytecode, backend)
		if err != nil {
			return nil, &domain.DeploymentRejectedError{Stage: domain.StageImplementation, Err: err}
		}
		d.log.Info("implementation submitted", "contract", req.Implementation.Name, "address", addr.Hex(), "tx", tx.Hash().Hex())

		if _, err := d.waiter.Await(ctx, tx, domain.StageImplementation); err != nil {
			return nil, err
		}
		handle.ImplementationAddress = addr
		handle.ImplementationTxHash = tx.Hash()
	}

	proxyAddr, proxyTx, _, err := bind.DeployContract(opts, req.Proxy.ABI, req.Proxy.Bytecode, backend,
		d.proxyArgs(req, handle.ImplementationAddress, admin)...)
	if err != nil {
		return nil, &domain.DeploymentRejectedError{Stage: domain.StageProxy, Err: err}
	}
	d.log.Debug("proxy submitted", "kind", req.Kind, "address", proxyAddr.Hex(), "tx", proxyTx.Hash().Hex())

	handle.ProxyAddress = proxyAddr
	handle.ProxyTx = proxyTx
	return handle, nil
}

// proxyArgs returns the constructor arguments for the proxy kind:
// uups (implementation, data), transparent (implementation, admin, data)
func (d *ProxyDeployer) proxyArgs(req *models.ProxyDeploymentRequest, impl, admin common.Address) []any {
	data := req.InitData
	if data == nil {
		data = []byte{}
	}
	if req.Kind == domain.ProxyKindTransparent {
		return []any{impl, admin, data}
	}
	return []any{impl, data}
}

// findImplementation looks for a recorded implementation with the same
// bytecode that still has code on chain
func (d *ProxyDeployer) findImplementation(ctx context.Context, backend Backend, chainID uint64, impl *models.Artifact) (common.Address, bool, error) {
	if d.store == nil {
		return common.Address{}, false, nil
	}

	existing, err := d.store.FindImplementation(ctx, chainID, impl.BytecodeHash)
	if errors.Is(err, domain.ErrNotFound) {
		return common.Address{}, false, nil
	}
	if err != nil {
		d.log.Warn("failed to look up existing implementation", "error", err)
		return common.Address{}, false, nil
	}
	if !common.IsHexAddress(existing.ImplementationAddress) {
		return common.Address{}, false, nil
	}

	addr := common.HexToAddress(existing.ImplementationAddress)
	code, err := backend.CodeAt(ctx, addr, nil)
	if err != nil {
		return common.Address{}, false, &domain.DeploymentRejectedError{Stage: domain.StageImplementation, Err: err}
	}
	if len(code) == 0 {
		d.log.Debug("recorded implementation has no code", "address", addr.Hex())
		return common.Address{}, false, nil
	}
	return addr, true, nil
}

var _ usecase.ProxyDeployer = (*ProxyDeployer)(nil)
