package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/month"
)

// Status reports how a month's expenses compare to its limit.
type Status string

const (
	StatusNoLimit     Status = "No limit set"
	StatusWithinLimit Status = "Within limit"
	StatusExceeded    Status = "Limit exceeded"
)

// Summary is the derived monthly report.
type Summary struct {
	Month   month.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
	Limit   *decimal.Decimal // nil when no limit is set
	Status  Status
}

// Summarize computes income, expense, balance, and limit status for one
// month. Pure read over the store; a month with no transactions yields zero
// totals with status derived solely from the limit mapping.
func Summarize(s *Store, m month.Month) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, txn := range s.TransactionsIn(m) {
		switch txn.Kind {
		case model.KindIncome:
			income = income.Add(txn.Amount)
		case model.KindExpense:
			expense = expense.Add(txn.Amount)
		}
	}

	summary := Summary{
		Month:   m,
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
		Status:  StatusNoLimit,
	}

	if limit, ok := s.Limit(m); ok {
		summary.Limit = &limit
		if expense.LessThanOrEqual(limit) {
			summary.Status = StatusWithinLimit
		} else {
			summary.Status = StatusExceeded
		}
	}
	return summary
}
