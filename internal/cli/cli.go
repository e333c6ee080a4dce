// Package cli is the stx-e2e command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ashleanichols/stacks-wallet/internal/config"
)

// NewRootCommand builds the stx-e2e command tree.
func NewRootCommand(version string) *cobra.Command {
	cfg := &config.Config{}
	flags := &Flags{}

	root := &cobra.Command{
		Use:           "stx-e2e",
		Short:         "End-to-end scenarios for the Stacks desktop wallet",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(flags.EnvFile)
			if err != nil {
				return err
			}
			*cfg = *loaded
			return flags.apply(cfg)
		},
	}
	root.PersistentFlags().StringVar(&flags.EnvFile, "env-file", ".env", "File with STX_E2E_* settings")
	root.PersistentFlags().StringVar(&flags.Network, "network", "", "Network to run against (testnet or mainnet); defaults to $STX_NETWORK")
	root.PersistentFlags().StringVar(&flags.Screenshots, "screenshots", "", "Directory for screenshots")

	root.AddCommand(
		newRunCommand(cfg, flags),
		newGUICommand(cfg, flags),
		newListCommand(cfg),
		newHistoryCommand(cfg, flags),
	)
	return root
}
