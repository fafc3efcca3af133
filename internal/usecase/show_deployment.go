package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	// Ref is a record id, an id prefix or a proxy address
	Ref string
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	config *config.RuntimeConfig
	store  DeploymentStore
	sink   ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentStore, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		config: cfg,
		store:  store,
		sink:   sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*models.ProxyDeployment, error) {
	if params.Ref == "" {
		return nil, fmt.Errorf("deployment id or proxy address must be provided")
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment details",
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete", Message: "Deployment loaded"})

	if common.IsHexAddress(params.Ref) {
		var chainID uint64
		if uc.config.Network != nil {
			chainID = uc.config.Network.ChainID
		}
		deployment, err := uc.store.GetDeploymentByAddress(ctx, chainID, params.Ref)
		if err != nil {
			return nil, fmt.Errorf("deployment at %s: %w", params.Ref, err)
		}
		return deployment, nil
	}

	deployment, err := uc.store.GetDeployment(ctx, params.Ref)
	if err != nil {
		return nil, fmt.Errorf("deployment %s: %w", params.Ref, err)
	}
	return deployment, nil
}
