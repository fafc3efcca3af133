package app

import (
	"log/slog"

	"github.com/trebuchet-org/hoist/internal/adapters/blockchain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployProxy     *usecase.DeployProxy
	ListDeployments *usecase.ListDeployments
	ShowDeployment  *usecase.ShowDeployment
	ListNetworks    *usecase.ListNetworks

	// Adapters that hold resources
	Connector *blockchain.Connector

	closed bool
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployProxy *usecase.DeployProxy,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
	connector *blockchain.Connector,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		DeployProxy:     deployProxy,
		ListDeployments: listDeployments,
		ShowDeployment:  showDeployment,
		ListNetworks:    listNetworks,
		Connector:       connector,
	}, nil
}

// Close releases the RPC connection, if one was opened
func (a *App) Close() {
	if a.Connector != nil {
		a.Connector.Close()
	}
	a.closed = true
}

// Closed reports whether Close has run
func (a *App) Closed() bool {
	return a.closed
}
