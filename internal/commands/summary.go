package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/month"
)

func newSummaryCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [YYYY-MM]",
		Short: "Report income, expense, balance, and limit status for a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			monthArg := ""
			if len(args) > 0 {
				monthArg = args[0]
			}
			return runSummary(*dir, cmd.OutOrStdout(), monthArg, time.Now)
		},
	}
}

func runSummary(dir string, out io.Writer, monthArg string, now func() time.Time) error {
	env, err := openLedger(dir)
	if err != nil {
		return err
	}

	var m month.Month
	if monthArg == "" {
		m = month.Of(now())
	} else {
		m, err = month.Parse(monthArg)
		if err != nil {
			return err
		}
	}

	printSummary(out, ledger.Summarize(env.store, m))
	return nil
}

func printSummary(out io.Writer, s ledger.Summary) {
	fmt.Fprintf(out, "Summary for %s: Income=%s, Expense=%s, Balance=%s\n",
		s.Month, s.Income.StringFixed(2), s.Expense.StringFixed(2), s.Balance.StringFixed(2))

	limit := "none"
	if s.Limit != nil {
		limit = s.Limit.StringFixed(2)
	}
	fmt.Fprintf(out, "Limit: %s, Status: %s\n", limit, s.Status)
}
