package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/models"
)

// ArtifactRegistry resolves compiled contracts by name
type ArtifactRegistry interface {
	// GetArtifact accepts "Name" or "path/to/File.sol:Name". Unknown names
	// fail with *domain.ArtifactNotFoundError.
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// ProxyDeployer submits an implementation (unless reused) and the proxy wrapping it
type ProxyDeployer interface {
	// DeployUpgradeableProxy returns once the proxy transaction has been
	// accepted by the node. Rejections are *domain.DeploymentRejectedError.
	DeployUpgradeableProxy(ctx context.Context, req *models.ProxyDeploymentRequest) (*models.DeploymentHandle, error)
}

// ConfirmationWaiter blocks until a transaction is final
type ConfirmationWaiter interface {
	AwaitConfirmation(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// DeploymentStore handles persistence of confirmed proxy deployments
type DeploymentStore interface {
	SaveDeployment(ctx context.Context, deployment *models.ProxyDeployment) error
	GetDeployment(ctx context.Context, id string) (*models.ProxyDeployment, error)
	GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.ProxyDeployment, error)
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.ProxyDeployment, error)
	// FindImplementation returns the latest deployment on chainID whose
	// implementation was built from bytecodeHash, or domain.ErrNotFound.
	FindImplementation(ctx context.Context, chainID uint64, bytecodeHash common.Hash) (*models.ProxyDeployment, error)
}

// NetworkResolver resolves network configurations
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*domain.Network, error)
}

// ArtifactSelector lets the user pick one of several artifacts sharing a name
type ArtifactSelector interface {
	SelectArtifact(ctx context.Context, name string, candidates []*models.Artifact) (*models.Artifact, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Use case result types

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.ProxyDeployment
	Summary     DeploymentSummary
}

// DeploymentSummary contains summary statistics
type DeploymentSummary struct {
	Total       int
	ByNamespace map[string]int
	ByChain     map[uint64]int
	ByKind      map[domain.ProxyKind]int
}
