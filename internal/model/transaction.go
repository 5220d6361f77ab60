package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money in or money out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind validates a kind tag.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome, KindExpense:
		return Kind(s), nil
	}
	return "", Invalidf("kind", "must be %q or %q, got %q", KindIncome, KindExpense, s)
}

// Transaction is a single income or expense record. Construct via New;
// values are never mutated after construction.
type Transaction struct {
	Kind        Kind
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// New validates and builds a Transaction. The date must already be a parsed
// calendar date (day precision); string parsing happens at the CLI boundary.
func New(kind Kind, amount decimal.Decimal, date time.Time, description string) (Transaction, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Transaction{}, err
	}
	if amount.IsNegative() {
		return Transaction{}, Invalidf("amount", "must not be negative, got %s", amount)
	}
	if date.IsZero() {
		return Transaction{}, Invalidf("date", "must be set")
	}
	return Transaction{
		Kind:        kind,
		Amount:      amount,
		Date:        date,
		Description: description,
	}, nil
}
