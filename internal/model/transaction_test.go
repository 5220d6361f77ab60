package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew_Valid(t *testing.T) {
	txn, err := New(KindIncome, decimal.RequireFromString("1000.00"), date(2024, time.January, 5), "salary")
	require.NoError(t, err)
	assert.Equal(t, KindIncome, txn.Kind)
	assert.Equal(t, "1000.00", txn.Amount.StringFixed(2))
	assert.Equal(t, "salary", txn.Description)
}

func TestNew_ZeroAmount(t *testing.T) {
	_, err := New(KindExpense, decimal.Zero, date(2024, time.January, 5), "")
	require.NoError(t, err)
}

func TestNew_EmptyDescription(t *testing.T) {
	_, err := New(KindExpense, decimal.NewFromInt(5), date(2024, time.January, 5), "")
	require.NoError(t, err)
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(Kind("transfer"), decimal.NewFromInt(10), date(2024, time.January, 5), "")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "kind", verr.Field)
}

func TestNew_NegativeAmount(t *testing.T) {
	_, err := New(KindIncome, decimal.RequireFromString("-0.01"), date(2024, time.January, 5), "")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
}

func TestNew_ZeroDate(t *testing.T) {
	_, err := New(KindIncome, decimal.NewFromInt(10), time.Time{}, "")
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("income")
	require.NoError(t, err)
	assert.Equal(t, KindIncome, k)

	k, err = ParseKind("expense")
	require.NoError(t, err)
	assert.Equal(t, KindExpense, k)

	_, err = ParseKind("Income")
	require.Error(t, err)
	_, err = ParseKind("")
	require.Error(t, err)
}
