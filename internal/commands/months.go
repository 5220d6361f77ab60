package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newMonthsCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List months that have transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonths(*dir, cmd.OutOrStdout())
		},
	}
}

func runMonths(dir string, out io.Writer) error {
	env, err := openLedger(dir)
	if err != nil {
		return err
	}

	months := env.store.Months()
	if len(months) == 0 {
		fmt.Fprintln(out, "No data.")
		return nil
	}
	for _, m := range months {
		fmt.Fprintln(out, m)
	}
	return nil
}
