package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hoist/internal/cli/render"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

type networkJSON struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks from foundry.toml",
		Long: `List all networks configured in the [rpc_endpoints] section of foundry.toml.

This command shows all available networks and attempts to fetch their chain IDs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				out := make([]networkJSON, len(result.Networks))
				for i, n := range result.Networks {
					out[i] = networkJSON{Name: n.Name, ChainID: n.ChainID, ExplorerURL: n.ExplorerURL}
					if n.Error != nil {
						out[i].Error = n.Error.Error()
					}
				}
				return render.WriteJSON(cmd.OutOrStdout(), out)
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout(), !color.NoColor).RenderNetworksList(result)
		},
	}

	return cmd
}
