package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/domain/models"
)

// DeployStage represents the current step of a proxy deployment
type DeployStage string

const (
	StageResolving  DeployStage = "Resolving"
	StageDeploying  DeployStage = "Deploying"
	StageConfirming DeployStage = "Confirming"
	StageRecording  DeployStage = "Recording"
	StageCompleted  DeployStage = "Completed"
	StageFailed     DeployStage = "Failed"
)

// DeployProxyParams contains parameters for deploying an upgradeable proxy
type DeployProxyParams struct {
	Contract      string
	Kind          string
	Initializer   string
	NoInitializer bool
	InitArgs      []string
	ProxyAdmin    string
	DryRun        bool
}

// DeployProxyResult contains the result of a proxy deployment
type DeployProxyResult struct {
	Implementation *models.Artifact
	Proxy          *models.Artifact
	Kind           domain.ProxyKind
	InitData       []byte
	Admin          common.Address
	DryRun         bool

	// Set once the deployment has been submitted and confirmed
	Handle     *models.DeploymentHandle
	Receipt    *types.Receipt
	Deployment *models.ProxyDeployment
}

// DeployProxy resolves an artifact, deploys it behind an upgradeable proxy and
// waits for the proxy transaction to be confirmed. Nothing is retried.
type DeployProxy struct {
	config   *config.RuntimeConfig
	registry ArtifactRegistry
	deployer ProxyDeployer
	waiter   ConfirmationWaiter
	store    DeploymentStore
	progress ProgressSink
	log      *slog.Logger
}

// NewDeployProxy creates a new DeployProxy use case
func NewDeployProxy(
	cfg *config.RuntimeConfig,
	registry ArtifactRegistry,
	deployer ProxyDeployer,
	waiter ConfirmationWaiter,
	store DeploymentStore,
	progress ProgressSink,
	log *slog.Logger,
) *DeployProxy {
	return &DeployProxy{
		config:   cfg,
		registry: registry,
		deployer: deployer,
		waiter:   waiter,
		store:    store,
		progress: progress,
		log:      log.With("component", "DeployProxy"),
	}
}

// Run executes the deployment
func (uc *DeployProxy) Run(ctx context.Context, params DeployProxyParams) (_ *DeployProxyResult, err error) {
	defer func() {
		if err != nil {
			uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageFailed), Message: err.Error()})
		}
	}()

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageResolving),
		Message: "Resolving artifacts",
		Spinner: true,
	})

	name := strings.TrimSpace(params.Contract)
	if name == "" {
		return nil, &domain.ArtifactNotFoundError{}
	}
	if strings.Contains(name, "${") {
		return nil, &domain.ArtifactNotFoundError{Name: name, Reason: "unresolved placeholder"}
	}

	impl, err := uc.registry.GetArtifact(ctx, name)
	if err != nil {
		return nil, err
	}

	kind, err := domain.ParseProxyKind(params.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, params.Kind)
	}
	if kind == domain.ProxyKindAuto {
		kind = domain.InferProxyKind(impl.ABI)
		uc.log.Debug("inferred proxy kind", "contract", impl.Name, "kind", kind)
	}

	proxy, err := uc.registry.GetArtifact(ctx, uc.proxyArtifactName(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s proxy artifact: %w", kind, err)
	}

	initData, err := domain.EncodeInitializer(impl.ABI, domain.InitializerOptions{
		Name:     params.Initializer,
		Disabled: params.NoInitializer,
	}, params.InitArgs)
	if err != nil {
		return nil, err
	}

	var admin common.Address
	if params.ProxyAdmin != "" {
		if !common.IsHexAddress(params.ProxyAdmin) {
			return nil, fmt.Errorf("invalid proxy admin address: %s", params.ProxyAdmin)
		}
		admin = common.HexToAddress(params.ProxyAdmin)
	}

	result := &DeployProxyResult{
		Implementation: impl,
		Proxy:          proxy,
		Kind:           kind,
		InitData:       initData,
		Admin:          admin,
		DryRun:         params.DryRun,
	}
	if params.DryRun {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted), Message: "Dry run"})
		return result, nil
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageDeploying),
		Message: fmt.Sprintf("Deploying %s behind %s proxy", impl.Name, kind),
		Spinner: true,
	})

	handle, err := uc.deployer.DeployUpgradeableProxy(ctx, &models.ProxyDeploymentRequest{
		Implementation: impl,
		Proxy:          proxy,
		Kind:           kind,
		InitArgs:       params.InitArgs,
		InitData:       initData,
		Admin:          admin,
	})
	if err != nil {
		return nil, err
	}
	result.Handle = handle

	uc.log.Info("proxy submitted",
		"contract", impl.Name,
		"proxy", handle.ProxyAddress.Hex(),
		"tx", handle.ProxyTx.Hash().Hex())

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageConfirming),
		Message: fmt.Sprintf("Waiting for %s", handle.ProxyTx.Hash().Hex()),
		Spinner: true,
	})

	receipt, err := uc.waiter.AwaitConfirmation(ctx, handle.ProxyTx)
	if err != nil {
		return nil, err
	}
	result.Receipt = receipt

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageRecording),
		Message: "Recording deployment",
		Spinner: true,
	})

	deployment := uc.buildRecord(impl, handle, receipt, initData)
	if err := uc.store.SaveDeployment(ctx, deployment); err != nil {
		// the proxy is live on chain; a missing record is not a failed deployment
		uc.log.Warn("failed to record deployment", "proxy", deployment.ProxyAddress, "error", err)
		uc.progress.Error(fmt.Sprintf("failed to record deployment: %v", err))
	} else {
		result.Deployment = deployment
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompleted),
		Message: "Proxy deployed",
	})

	return result, nil
}

func (uc *DeployProxy) proxyArtifactName(kind domain.ProxyKind) string {
	if kind == domain.ProxyKindUUPS {
		return uc.config.Deploy.UUPSProxyArtifact
	}
	return uc.config.Deploy.TransparentProxyArtifact
}

func (uc *DeployProxy) buildRecord(impl *models.Artifact, handle *models.DeploymentHandle, receipt *types.Receipt, initData []byte) *models.ProxyDeployment {
	d := &models.ProxyDeployment{
		ID:                    uuid.NewString(),
		Namespace:             uc.config.Namespace,
		ChainID:               handle.ChainID,
		ContractName:          impl.Name,
		ArtifactPath:          impl.FullName(),
		Kind:                  handle.Kind,
		ProxyAddress:          handle.ProxyAddress.Hex(),
		ImplementationAddress: handle.ImplementationAddress.Hex(),
		Deployer:              handle.Deployer.Hex(),
		ProxyTxHash:           handle.ProxyTx.Hash().Hex(),
		BytecodeHash:          impl.BytecodeHash.Hex(),
		CreatedAt:             time.Now().UTC(),
	}
	if uc.config.Network != nil {
		d.Network = uc.config.Network.Name
	}
	if handle.Admin != (common.Address{}) {
		d.Admin = handle.Admin.Hex()
	}
	if handle.ImplementationTxHash != (common.Hash{}) {
		d.ImplementationTxHash = handle.ImplementationTxHash.Hex()
	}
	if receipt != nil && receipt.BlockNumber != nil {
		d.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if len(initData) > 0 {
		d.InitData = hexutil.Encode(initData)
	}
	return d
}
