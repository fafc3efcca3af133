package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// DeployRenderer renders the outcome of a proxy deployment
type DeployRenderer struct {
	out   io.Writer
	color bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, color bool) *DeployRenderer {
	return &DeployRenderer{
		out:   out,
		color: color,
	}
}

// DeployOutput is the --json shape of a deployment result
type DeployOutput struct {
	Contract              string `json:"contract"`
	Kind                  string `json:"kind"`
	DryRun                bool   `json:"dryRun,omitempty"`
	ID                    string `json:"id,omitempty"`
	ChainID               uint64 `json:"chainId,omitempty"`
	ProxyAddress          string `json:"proxyAddress,omitempty"`
	ImplementationAddress string `json:"implementationAddress,omitempty"`
	ImplementationReused  bool   `json:"implementationReused,omitempty"`
	Admin                 string `json:"admin,omitempty"`
	ProxyTxHash           string `json:"proxyTxHash,omitempty"`
	BlockNumber           uint64 `json:"blockNumber,omitempty"`
	InitData              string `json:"initData,omitempty"`
}

// Output flattens a result for JSON encoding
func Output(result *usecase.DeployProxyResult) DeployOutput {
	out := DeployOutput{
		Contract: result.Implementation.FullName(),
		Kind:     string(result.Kind),
		DryRun:   result.DryRun,
	}
	if len(result.InitData) > 0 {
		out.InitData = hexutil.Encode(result.InitData)
	}
	if h := result.Handle; h != nil {
		out.ChainID = h.ChainID
		out.ProxyAddress = h.ProxyAddress.Hex()
		out.ImplementationAddress = h.ImplementationAddress.Hex()
		out.ImplementationReused = h.ImplementationReused
		out.ProxyTxHash = h.ProxyTx.Hash().Hex()
		if h.Admin != (common.Address{}) {
			out.Admin = h.Admin.Hex()
		}
	}
	if result.Receipt != nil && result.Receipt.BlockNumber != nil {
		out.BlockNumber = result.Receipt.BlockNumber.Uint64()
	}
	if result.Deployment != nil {
		out.ID = result.Deployment.ID
	}
	return out
}

// Render writes a human readable summary
func (r *DeployRenderer) Render(result *usecase.DeployProxyResult) error {
	if result.DryRun {
		fmt.Fprintln(r.out, FormatSuccess("Dry run: nothing was sent"))
		fmt.Fprintf(r.out, "  Implementation: %s\n", result.Implementation.FullName())
		fmt.Fprintf(r.out, "  Proxy: %s (%s)\n", result.Proxy.FullName(), KindLabel(string(result.Kind)))
		if len(result.InitData) > 0 {
			fmt.Fprintf(r.out, "  Init Data: %s\n", hexutil.Encode(result.InitData))
		} else {
			fmt.Fprintf(r.out, "  Init Data: %s\n", color.New(color.Faint).Sprint("none"))
		}
		return nil
	}

	o := Output(result)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s behind a %s proxy", result.Implementation.Name, KindLabel(o.Kind))))
	fmt.Fprintf(r.out, "  Proxy: %s\n", color.New(color.FgGreen, color.Bold).Sprint(o.ProxyAddress))
	impl := o.ImplementationAddress
	if o.ImplementationReused {
		impl += color.New(color.Faint).Sprint(" (reused)")
	}
	fmt.Fprintf(r.out, "  Implementation: %s\n", impl)
	if o.Admin != "" {
		fmt.Fprintf(r.out, "  Admin: %s\n", o.Admin)
	}
	fmt.Fprintf(r.out, "  Transaction: %s (block %d)\n", shortHash(o.ProxyTxHash), o.BlockNumber)
	if o.ID != "" {
		fmt.Fprintf(r.out, "  Record: %s\n", color.New(color.FgCyan).Sprint(o.ID))
	} else {
		fmt.Fprintln(r.out, FormatWarning("deployment was not recorded"))
	}
	return nil
}

var _ Renderer[*usecase.DeployProxyResult] = (*DeployRenderer)(nil)
