package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/hoist/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/hoist/internal/adapters/config"
	"github.com/trebuchet-org/hoist/internal/adapters/forge"
	"github.com/trebuchet-org/hoist/internal/adapters/interactive"
	"github.com/trebuchet-org/hoist/internal/adapters/progress"
	"github.com/trebuchet-org/hoist/internal/adapters/repository/contracts"
	"github.com/trebuchet-org/hoist/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/hoist/internal/config"
	domainconfig "github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// ProvideProgressSink picks the spinner for terminals and a no-op sink otherwise
func ProvideProgressSink(cfg *domainconfig.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.JSON {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerProgressReporter()
}

// RepositorySet provides file-based repositories
var RepositorySet = wire.NewSet(
	deployments.ProvideFileRepository,
	wire.Bind(new(usecase.DeploymentStore), new(*deployments.FileRepository)),

	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRegistry), new(*contracts.Repository)),
)

// ForgeSet provides forge-based implementations
var ForgeSet = wire.NewSet(
	forge.NewForgeAdapter,
	wire.Bind(new(contracts.Builder), new(*forge.ForgeAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ArtifactSelector), new(*interactive.SelectorAdapter)),
	ProvideProgressSink,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewConnector,
	blockchain.NewConfirmationWaiter,
	wire.Bind(new(usecase.ConfirmationWaiter), new(*blockchain.ConfirmationWaiter)),
	blockchain.NewProxyDeployer,
	wire.Bind(new(usecase.ProxyDeployer), new(*blockchain.ProxyDeployer)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	ForgeSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
