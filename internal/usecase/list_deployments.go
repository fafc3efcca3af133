package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Namespace and chain ID come from RuntimeConfig
	ContractName string
	// AllNamespaces lists every namespace instead of the active one
	AllNamespaces bool
}

// ListDeployments is the use case for listing recorded proxy deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	store  DeploymentStore
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, store DeploymentStore, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		store:  store,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments",
		Spinner: true,
	})

	filter := domain.DeploymentFilter{
		ContractName: params.ContractName,
	}
	if !params.AllNamespaces {
		filter.Namespace = uc.config.Namespace
	}
	if uc.config.Network != nil {
		filter.ChainID = uc.config.Network.ChainID
	}

	deployments, err := uc.store.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortDeployments(deployments)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}, nil
}

// sortDeployments sorts deployments by namespace, chain, contract name, then creation time
func sortDeployments(deployments []*models.ProxyDeployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		a, b := deployments[i], deployments[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if a.ContractName != b.ContractName {
			return a.ContractName < b.ContractName
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(deployments []*models.ProxyDeployment) DeploymentSummary {
	return DeploymentSummary{
		Total: len(deployments),
		ByNamespace: lo.CountValuesBy(deployments, func(d *models.ProxyDeployment) string {
			return d.Namespace
		}),
		ByChain: lo.CountValuesBy(deployments, func(d *models.ProxyDeployment) uint64 {
			return d.ChainID
		}),
		ByKind: lo.CountValuesBy(deployments, func(d *models.ProxyDeployment) domain.ProxyKind {
			return d.Kind
		}),
	}
}
