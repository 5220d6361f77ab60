// Package ledger holds the in-memory store of transactions and monthly
// expense limits, and the summary computation over it.
package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/month"
)

// Saver persists the full store state after each mutation.
type Saver interface {
	Save(transactions []model.Transaction, limits map[month.Month]decimal.Decimal) error
}

// Store owns the insertion-ordered transaction sequence and the month to
// expense-limit mapping. It is not safe for concurrent use.
type Store struct {
	transactions []model.Transaction
	limits       map[month.Month]decimal.Decimal
	saver        Saver
}

// NewStore builds a Store from previously loaded state. Either slice or map
// may be nil. The saver is invoked after every successful mutation.
func NewStore(transactions []model.Transaction, limits map[month.Month]decimal.Decimal, saver Saver) *Store {
	if limits == nil {
		limits = make(map[month.Month]decimal.Decimal)
	}
	return &Store{transactions: transactions, limits: limits, saver: saver}
}

// AddTransaction validates, appends, and persists a new transaction. On
// validation failure the sequence is unchanged. On save failure the append
// is rolled back so memory matches disk, and the error propagates.
func (s *Store) AddTransaction(kind model.Kind, amount decimal.Decimal, date time.Time, description string) (model.Transaction, error) {
	txn, err := model.New(kind, amount, date, description)
	if err != nil {
		return model.Transaction{}, err
	}

	s.transactions = append(s.transactions, txn)
	if err := s.save(); err != nil {
		s.transactions = s.transactions[:len(s.transactions)-1]
		return model.Transaction{}, err
	}
	return txn, nil
}

// SetLimit records the expense ceiling for a month, overwriting any prior
// value. On save failure the previous value is restored.
func (s *Store) SetLimit(m month.Month, limit decimal.Decimal) error {
	if limit.IsNegative() {
		return model.Invalidf("limit", "must not be negative, got %s", limit)
	}

	prev, had := s.limits[m]
	s.limits[m] = limit
	if err := s.save(); err != nil {
		if had {
			s.limits[m] = prev
		} else {
			delete(s.limits, m)
		}
		return err
	}
	return nil
}

// Transactions returns the full sequence in insertion order.
func (s *Store) Transactions() []model.Transaction {
	return s.transactions
}

// TransactionsIn returns the transactions dated within m, in insertion order.
func (s *Store) TransactionsIn(m month.Month) []model.Transaction {
	var result []model.Transaction
	for _, txn := range s.transactions {
		if m.Contains(txn.Date) {
			result = append(result, txn)
		}
	}
	return result
}

// Limit returns the expense ceiling for a month, if one is set.
func (s *Store) Limit(m month.Month) (decimal.Decimal, bool) {
	limit, ok := s.limits[m]
	return limit, ok
}

// Limits returns the full month to limit mapping.
func (s *Store) Limits() map[month.Month]decimal.Decimal {
	return s.limits
}

// Months returns the distinct months with at least one transaction, in
// chronological order.
func (s *Store) Months() []month.Month {
	seen := make(map[month.Month]bool)
	var result []month.Month
	for _, txn := range s.transactions {
		m := month.Of(txn.Date)
		if !seen[m] {
			seen[m] = true
			result = append(result, m)
		}
	}
	slices.SortFunc(result, month.Month.Compare)
	return result
}

func (s *Store) save() error {
	if s.saver == nil {
		return nil
	}
	if err := s.saver.Save(s.transactions, s.limits); err != nil {
		return fmt.Errorf("persisting ledger: %w", err)
	}
	return nil
}
