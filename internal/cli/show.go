package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hoist/internal/cli/render"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show <id|address>",
		Short: "Show a recorded proxy deployment",
		Long: `Show detailed information about a recorded proxy deployment.

The deployment can be given as:
- Record id: "3f0c8a52-..."
- Unique id prefix: "3f0c8a52"
- Proxy address: "0x1234..." (restricted to --network when given)`,
		Example: `  hoist show 3f0c8a52
  hoist show 0x5FbDB2315678afecb367f032d93F642f64180aa3 -n sepolia
  hoist show 3f0c8a52 --yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			deployment, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{Ref: args[0]})
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentRenderer(cmd.OutOrStdout(), !color.NoColor)
			switch {
			case app.Config.JSON:
				return render.WriteJSON(cmd.OutOrStdout(), deployment)
			case asYAML:
				return renderer.RenderYAML(deployment)
			default:
				return renderer.RenderDeployment(deployment)
			}
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output as YAML")

	return cmd
}
