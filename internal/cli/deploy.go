package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hoist/internal/cli/render"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Deploy a contract behind an upgradeable proxy",
		Long: `Deploy a compiled contract behind an upgradeable proxy and wait for the
proxy transaction to be confirmed.

The contract is given as "Name" or "path/to/File.sol:Name". Without an argument
the name comes from HOIST_CONTRACT or the contract key of [profile.<ns>.hoist]
in foundry.toml, so ${VAR} placeholders there are expanded from the environment.

Initializer arguments are passed in order with --arg and encoded against the
initializer's ABI. Nothing is retried: a rejected transaction or a missed
confirmation fails the command.`,
		Example: `  # Deploy Counter behind a proxy, kind inferred from its ABI
  hoist deploy Counter --network sepolia

  # UUPS proxy with initialize(address,uint256)
  hoist deploy src/Vault.sol:Vault --kind uups --arg 0x1234... --arg 1000 -n sepolia

  # Resolve and encode only
  hoist deploy Counter --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			cfg := app.Config.Deploy
			params := usecase.DeployProxyParams{
				Contract:      cfg.Contract,
				Kind:          cfg.Kind,
				Initializer:   cfg.Initializer,
				NoInitializer: cfg.NoInitializer,
				InitArgs:      cfg.InitArgs,
				ProxyAdmin:    cfg.ProxyAdmin,
				DryRun:        cfg.DryRun,
			}
			if len(args) > 0 {
				params.Contract = args[0]
			}
			// read directly so commas inside a value are not split
			if cmd.Flags().Changed("arg") {
				params.InitArgs, err = cmd.Flags().GetStringArray("arg")
				if err != nil {
					return err
				}
			}

			result, err := app.DeployProxy.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.WriteJSON(cmd.OutOrStdout(), render.Output(result))
			}
			return render.NewDeployRenderer(cmd.OutOrStdout(), !color.NoColor).Render(result)
		},
	}

	cmd.Flags().String("kind", "", "Proxy kind: uups, transparent or auto (default: inferred from the ABI)")
	cmd.Flags().String("initializer", "", "Initializer function name or signature (default: initialize)")
	cmd.Flags().Bool("no-initializer", false, "Deploy the proxy without calling an initializer")
	cmd.Flags().StringArray("arg", nil, "Initializer argument, repeat in order")
	cmd.Flags().String("proxy-admin", "", "Initial admin of a transparent proxy (default: the deployer)")
	cmd.Flags().Uint64("confirmations", 1, "Blocks required on top of the proxy transaction")
	cmd.Flags().Duration("poll-interval", 0, "Receipt polling interval (default 2s)")
	cmd.Flags().Bool("build", true, "Run forge build before resolving the contract")
	cmd.Flags().Bool("dry-run", false, "Resolve and encode only, send nothing")

	return cmd
}
