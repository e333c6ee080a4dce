package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/config"
)

func newListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the scenario's stages and the actions each performs",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Dry run never touches the ledger or Redis.
			s, err := newSession(cfg, false, false)
			if err != nil {
				return err
			}
			defer s.Close()

			s.tester.DryRunAll()

			w := cmd.OutOrStdout()
			title := color.New(color.FgCyan, color.Bold).SprintFunc()
			for i, stage := range s.tester.Stages {
				name := stage.Name
				if stage.Always {
					name += " (always)"
				}
				fmt.Fprintf(w, "%d. %s\n", i+1, title(name))
				for _, a := range v1.GetStageActions(stage.Name) {
					fmt.Fprintf(w, "   - %s\n", a.Summary)
				}
			}
			return nil
		},
	}
}
