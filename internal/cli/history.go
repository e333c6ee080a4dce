package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ashleanichols/stacks-wallet/internal/config"
	"github.com/ashleanichols/stacks-wallet/internal/ledger"
)

func newHistoryCommand(cfg *config.Config, flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ledger.Open(cfg.LedgerDriver, cfg.LedgerDSN)
			if err != nil {
				return err
			}
			defer l.Close()

			runs, err := l.Recent(flags.Limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}

			pass := color.New(color.FgGreen).SprintFunc()
			fail := color.New(color.FgRed).SprintFunc()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tNETWORK\tSTATUS\tDURATION\tADDRESS\tFAILURE")
			for _, r := range runs {
				status := pass(r.Status)
				if !r.Passed() {
					status = fail(r.Status)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.StartedAt.Local().Format(time.DateTime), r.Network, status,
					r.Duration.Round(time.Millisecond), r.Address, r.Failure)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}
