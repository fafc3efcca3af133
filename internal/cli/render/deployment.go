package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/hoist/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, color bool) *DeploymentRenderer {
	return &DeploymentRenderer{
		out:   out,
		color: color,
	}
}

// RenderDeployment renders detailed deployment information
func (r *DeploymentRenderer) RenderDeployment(d *models.ProxyDeployment) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", d.ID)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", color.New(color.FgYellow).Sprint(d.ContractName))
	fmt.Fprintf(r.out, "  Artifact: %s\n", d.ArtifactPath)
	fmt.Fprintf(r.out, "  Namespace: %s\n", d.Namespace)
	fmt.Fprintf(r.out, "  Network: %s\n", chainName(d))

	fmt.Fprintln(r.out, "\nProxy Information:")
	fmt.Fprintf(r.out, "  Type: %s\n", KindLabel(string(d.Kind)))
	fmt.Fprintf(r.out, "  Proxy: %s\n", d.ProxyAddress)
	fmt.Fprintf(r.out, "  Implementation: %s\n", d.ImplementationAddress)
	if d.Admin != "" {
		fmt.Fprintf(r.out, "  Admin: %s\n", d.Admin)
	}
	if d.InitData != "" {
		fmt.Fprintf(r.out, "  Init Data: %s\n", d.InitData)
	}

	fmt.Fprintln(r.out, "\nTransactions:")
	fmt.Fprintf(r.out, "  Deployer: %s\n", d.Deployer)
	fmt.Fprintf(r.out, "  Proxy Tx: %s\n", d.ProxyTxHash)
	if d.ImplementationTxHash != "" {
		fmt.Fprintf(r.out, "  Implementation Tx: %s\n", d.ImplementationTxHash)
	} else {
		fmt.Fprintf(r.out, "  Implementation Tx: %s\n", color.New(color.Faint).Sprint("reused"))
	}
	fmt.Fprintf(r.out, "  Block: %d\n", d.BlockNumber)
	fmt.Fprintf(r.out, "  Bytecode Hash: %s\n", d.BytecodeHash)

	fmt.Fprintln(r.out, "\nTimestamps:")
	fmt.Fprintf(r.out, "  Created: %s\n", d.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	return nil
}

// RenderYAML writes the record as YAML using its JSON field names
func (r *DeploymentRenderer) RenderYAML(d *models.ProxyDeployment) error {
	doc := map[string]any{
		"id":                    d.ID,
		"namespace":             d.Namespace,
		"chainId":               d.ChainID,
		"contractName":          d.ContractName,
		"artifactPath":          d.ArtifactPath,
		"kind":                  string(d.Kind),
		"proxyAddress":          d.ProxyAddress,
		"implementationAddress": d.ImplementationAddress,
		"deployer":              d.Deployer,
		"proxyTxHash":           d.ProxyTxHash,
		"blockNumber":           d.BlockNumber,
		"bytecodeHash":          d.BytecodeHash,
		"createdAt":             d.CreatedAt,
	}
	if d.Network != "" {
		doc["network"] = d.Network
	}
	if d.Admin != "" {
		doc["admin"] = d.Admin
	}
	if d.ImplementationTxHash != "" {
		doc["implementationTxHash"] = d.ImplementationTxHash
	}
	if d.InitData != "" {
		doc["initData"] = d.InitData
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
