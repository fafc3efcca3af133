package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/hoist/internal/domain"
)

// ProxyDeploymentRequest is everything the proxy deployer needs to submit a deployment
type ProxyDeploymentRequest struct {
	Implementation *Artifact
	Proxy          *Artifact
	Kind           domain.ProxyKind

	// InitArgs are the initializer arguments exactly as given; InitData is
	// their encoding against the implementation ABI.
	InitArgs []string
	InitData []byte

	// Admin is the initial owner of a transparent proxy. Zero means the deployer.
	Admin common.Address
}

// DeploymentHandle refers to a submitted proxy deployment. It is owned by a
// single deploy run and dropped once the proxy transaction is confirmed.
type DeploymentHandle struct {
	ChainID  uint64
	Kind     domain.ProxyKind
	Deployer common.Address
	Admin    common.Address

	ImplementationAddress common.Address
	ImplementationTxHash  common.Hash // zero when an existing implementation was reused
	ImplementationReused  bool

	ProxyAddress common.Address
	ProxyTx      *types.Transaction
}

// ProxyDeployment is the persisted record of a confirmed proxy deployment
type ProxyDeployment struct {
	ID           string           `json:"id"`
	Namespace    string           `json:"namespace"`
	Network      string           `json:"network,omitempty"`
	ChainID      uint64           `json:"chainId"`
	ContractName string           `json:"contractName"`
	ArtifactPath string           `json:"artifactPath"` // e.g. "src/Counter.sol:Counter"
	Kind         domain.ProxyKind `json:"kind"`

	ProxyAddress          string `json:"proxyAddress"`
	ImplementationAddress string `json:"implementationAddress"`
	Admin                 string `json:"admin,omitempty"`
	Deployer              string `json:"deployer"`

	ProxyTxHash          string `json:"proxyTxHash"`
	ImplementationTxHash string `json:"implementationTxHash,omitempty"`
	BlockNumber          uint64 `json:"blockNumber"`
	BytecodeHash         string `json:"bytecodeHash"`
	InitData             string `json:"initData,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ShortID returns the first segment of the record id
func (d *ProxyDeployment) ShortID() string {
	if len(d.ID) > 8 {
		return d.ID[:8]
	}
	return d.ID
}
