package cli

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hoist/internal/app"
	"github.com/trebuchet-org/hoist/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hoist",
		Short: "Upgradeable proxy deployments for Foundry projects",
		Long: `Hoist deploys a compiled Foundry contract behind an upgradeable proxy
(UUPS or transparent), waits for the proxy to be confirmed and records the
deployment under .hoist/deployments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp(cmd.Name()) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// the timeout bounds confirmation waits only; the waiter enforces it
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringP("namespace", "s", "", "Deployment namespace (defaults to 'default') [also sets foundry profile]")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from foundry.toml [rpc_endpoints] (e.g., mainnet, sepolia)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint to use instead of a named network")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "How long to wait for confirmations")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file (rotated)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipsApp reports whether a command runs without a project
func skipsApp(cmdName string) bool {
	return slices.Contains([]string{"version", "help", "completion", "__complete"}, cmdName)
}

// getApp retrieves the app instance from the command context
// Execute runs rootCmd and closes the app it initialized, whether or not the command failed
func Execute(ctx context.Context, rootCmd *cobra.Command) error {
	_, err := runAndClose(ctx, rootCmd)
	return err
}

// runAndClose returns the command that ran so its context can be inspected
func runAndClose(ctx context.Context, rootCmd *cobra.Command) (*cobra.Command, error) {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if cmd != nil {
		if a, appErr := getApp(cmd); appErr == nil {
			a.Close()
		}
	}
	return cmd, err
}

func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
