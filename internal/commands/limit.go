package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/month"
)

func newLimitCommand(dir *string) *cobra.Command {
	limitCmd := &cobra.Command{
		Use:   "limit",
		Short: "Monthly expense limits",
	}
	limitCmd.AddCommand(newLimitSetCommand(dir))
	return limitCmd
}

func newLimitSetCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <YYYY-MM> <amount>",
		Short: "Set the expense ceiling for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLimitSet(*dir, cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func runLimitSet(dir string, out io.Writer, monthArg, amountArg string) error {
	env, err := openLedger(dir)
	if err != nil {
		return err
	}

	m, err := month.Parse(monthArg)
	if err != nil {
		return err
	}

	limit, err := decimal.NewFromString(amountArg)
	if err != nil {
		return model.Invalidf("limit", "not a number: %q", amountArg)
	}

	if err := env.store.SetLimit(m, limit); err != nil {
		return err
	}

	env.recordMutation("set_limit", fmt.Sprintf("Limit for %s set to %s", m, limit.StringFixed(2)))

	fmt.Fprintf(out, "Limit for %s set to %s\n", m, limit.StringFixed(2))
	return nil
}
