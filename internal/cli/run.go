package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/config"
)

// ErrRunFailed is returned when a scenario stage failed.
var ErrRunFailed = errors.New("restore wallet run failed")

func newRunCommand(cfg *config.Config, flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the restore wallet scenario",
		Long:  "Launch the wallet with a clean config, restore the fixture wallet, check its STX address and reset it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			s, err := newSession(cfg, !flags.NoLedger, true)
			if err != nil {
				return err
			}
			defer s.Close()

			var results []v1.StageResult
			progress := newStageProgress(cmd.ErrOrStderr(), len(s.tester.Stages))
			s.tester.OnStageResult(func(res v1.StageResult) { results = append(results, res) })
			s.tester.OnStageResult(progress.Observe)

			runErr := s.tester.RunAll()
			progress.Finish()

			printSummary(cmd.OutOrStdout(), results, s.scenario.Address())
			if runErr != nil {
				return fmt.Errorf("%w: %v", ErrRunFailed, runErr)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.NoLedger, "no-ledger", false, "Do not record the run in the ledger")
	return cmd
}

func printSummary(w io.Writer, results []v1.StageResult, address string) {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	skip := color.New(color.FgYellow).SprintFunc()

	for _, res := range results {
		switch {
		case res.Passed():
			fmt.Fprintf(w, "%s %s\n", pass("PASS"), res.Name)
		case errors.Is(res.Err, v1.ErrStageSkipped):
			fmt.Fprintf(w, "%s %s\n", skip("SKIP"), res.Name)
		default:
			fmt.Fprintf(w, "%s %s: %v\n", fail("FAIL"), res.Name, res.Err)
		}
	}
	if address != "" {
		fmt.Fprintf(w, "STX address: %s\n", address)
	}
}
