package cli

import (
	"github.com/spf13/cobra"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/config"
)

func newGUICommand(cfg *config.Config, flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Open the interactive stage runner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			s, err := newSession(cfg, !flags.NoLedger, true)
			if err != nil {
				return err
			}
			defer s.Close()

			v1.RunGUI(s.tester, "Stacks Wallet: Restore Wallet")
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.NoLedger, "no-ledger", false, "Do not record runs in the ledger")
	return cmd
}
