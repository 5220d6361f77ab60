package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/month"
)

func newShellCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive menu for the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(*dir, cmd.InOrStdin(), cmd.OutOrStdout(), time.Now)
		},
	}
}

var menu = []string{
	"1. Add Income",
	"2. Add Expense",
	"3. Set Monthly Expense Limit",
	"4. View Monthly Summary",
	"5. List Months",
	"6. Exit",
}

func runShell(dir string, in io.Reader, out io.Writer, now func() time.Time) error {
	env, err := openLedger(dir)
	if err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, "\nMenu:")
		for _, item := range menu {
			fmt.Fprintln(out, item)
		}
		fmt.Fprint(out, "Choice: ")

		line, ok := readLine(sc)
		if !ok {
			return sc.Err()
		}

		switch line {
		case "1":
			shellAdd(env, sc, out, model.KindIncome)
		case "2":
			shellAdd(env, sc, out, model.KindExpense)
		case "3":
			shellSetLimit(env, sc, out)
		case "4":
			shellSummary(env, sc, out, now)
		case "5":
			shellMonths(env, out)
		case "6":
			fmt.Fprintln(out, "Bye.")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice.")
		}
	}
}

func shellAdd(env *ledgerEnv, sc *bufio.Scanner, out io.Writer, kind model.Kind) {
	amount, ok := promptAmount(sc, out, "Amount: ")
	if !ok {
		return
	}
	date, ok := promptDate(sc, out, "Date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	fmt.Fprint(out, "Description: ")
	description, _ := readLine(sc)

	txn, err := env.store.AddTransaction(kind, amount, date, description)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	env.recordMutation("add_"+string(kind),
		fmt.Sprintf("Recorded %s on %s (%s)", txn.Amount.StringFixed(2), txn.Date.Format(month.DateKey), txn.Description))

	switch kind {
	case model.KindIncome:
		fmt.Fprintln(out, "Income added.")
	case model.KindExpense:
		fmt.Fprintln(out, "Expense added.")
	}
}

func shellSetLimit(env *ledgerEnv, sc *bufio.Scanner, out io.Writer) {
	m, ok := promptMonth(sc, out, "Month (YYYY-MM): ")
	if !ok {
		return
	}
	limit, ok := promptAmount(sc, out, "Limit amount: ")
	if !ok {
		return
	}

	if err := env.store.SetLimit(m, limit); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	env.recordMutation("set_limit", fmt.Sprintf("Limit for %s set to %s", m, limit.StringFixed(2)))
	fmt.Fprintln(out, "Limit set.")
}

func shellSummary(env *ledgerEnv, sc *bufio.Scanner, out io.Writer, now func() time.Time) {
	fmt.Fprint(out, "Month (YYYY-MM), blank=current: ")
	line, _ := readLine(sc)

	var m month.Month
	if line == "" {
		m = month.Of(now())
	} else {
		var err error
		m, err = month.Parse(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
	}

	printSummary(out, ledger.Summarize(env.store, m))
}

func shellMonths(env *ledgerEnv, out io.Writer) {
	months := env.store.Months()
	if len(months) == 0 {
		fmt.Fprintln(out, "Months with data: No data.")
		return
	}
	keys := make([]string, len(months))
	for i, m := range months {
		keys[i] = m.String()
	}
	fmt.Fprintf(out, "Months with data: %s\n", strings.Join(keys, ", "))
}

// promptAmount re-prompts until a non-negative number is entered. Returns
// false on end of input.
func promptAmount(sc *bufio.Scanner, out io.Writer, msg string) (decimal.Decimal, bool) {
	for {
		fmt.Fprint(out, msg)
		line, ok := readLine(sc)
		if !ok {
			return decimal.Decimal{}, false
		}
		amount, err := decimal.NewFromString(line)
		if err != nil {
			fmt.Fprintln(out, "Invalid number.")
			continue
		}
		if amount.IsNegative() {
			fmt.Fprintln(out, "Must not be negative.")
			continue
		}
		return amount, true
	}
}

// promptDate re-prompts until a valid YYYY-MM-DD date is entered.
func promptDate(sc *bufio.Scanner, out io.Writer, msg string) (time.Time, bool) {
	for {
		fmt.Fprint(out, msg)
		line, ok := readLine(sc)
		if !ok {
			return time.Time{}, false
		}
		date, err := month.ParseDate(line)
		if err != nil {
			fmt.Fprintln(out, "Invalid format (YYYY-MM-DD).")
			continue
		}
		return date, true
	}
}

// promptMonth re-prompts until a valid YYYY-MM key is entered.
func promptMonth(sc *bufio.Scanner, out io.Writer, msg string) (month.Month, bool) {
	for {
		fmt.Fprint(out, msg)
		line, ok := readLine(sc)
		if !ok {
			return month.Month{}, false
		}
		m, err := month.Parse(line)
		if err != nil {
			fmt.Fprintln(out, "Invalid format (YYYY-MM).")
			continue
		}
		return m, true
	}
}

func readLine(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}
