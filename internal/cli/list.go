package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hoist/internal/cli/render"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		contractName  string
		allNamespaces bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded proxy deployments",
		Long: `List the proxy deployments recorded under .hoist/deployments.

Deployments are scoped to the current namespace and, when --network is given,
to that network's chain.`,
		Example: `  # List deployments in the default namespace
  hoist list

  # List all Counter proxies on sepolia
  hoist list --contract Counter -n sepolia

  # Every namespace
  hoist list --all-namespaces`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				ContractName:  contractName,
				AllNamespaces: allNamespaces,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.WriteJSON(cmd.OutOrStdout(), result.Deployments)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), !color.NoColor).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().BoolVar(&allNamespaces, "all-namespaces", false, "List deployments from every namespace")

	return cmd
}
