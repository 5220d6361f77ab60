package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/month"
)

func newAddCommand(dir *string) *cobra.Command {
	var dateArg string
	var description string

	cmd := &cobra.Command{
		Use:   "add <income|expense> <amount>",
		Short: "Record an income or expense transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(*dir, cmd.OutOrStdout(), args[0], args[1], dateArg, description, time.Now)
		},
	}

	cmd.Flags().StringVar(&dateArg, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&description, "desc", "m", "", "free-text description")

	return cmd
}

func runAdd(dir string, out io.Writer, kindArg, amountArg, dateArg, description string, now func() time.Time) error {
	env, err := openLedger(dir)
	if err != nil {
		return err
	}

	kind, err := model.ParseKind(kindArg)
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(amountArg)
	if err != nil {
		return model.Invalidf("amount", "not a number: %q", amountArg)
	}

	var date time.Time
	if dateArg == "" {
		n := now()
		date = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		date, err = month.ParseDate(dateArg)
		if err != nil {
			return err
		}
	}

	txn, err := env.store.AddTransaction(kind, amount, date, description)
	if err != nil {
		return err
	}

	env.recordMutation("add_"+string(kind),
		fmt.Sprintf("Recorded %s on %s (%s)", txn.Amount.StringFixed(2), txn.Date.Format(month.DateKey), txn.Description))

	fmt.Fprintf(out, "Recorded %s of %s on %s\n", txn.Kind, txn.Amount.StringFixed(2), txn.Date.Format(month.DateKey))
	return nil
}
