package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/auditlog"
	"github.com/tally-dev/tally/internal/storage"
)

var fixedNow = func() time.Time {
	return time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
}

func newLedgerDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, runInit(dir, false))
	return dir
}

func TestAddThenSummary(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.NoError(t, runAdd(dir, &out, "income", "1000.00", "2024-01-05", "salary", fixedNow))
	require.NoError(t, runAdd(dir, &out, "expense", "400.00", "2024-01-10", "rent", fixedNow))

	out.Reset()
	require.NoError(t, runSummary(dir, &out, "2024-01", fixedNow))
	assert.Contains(t, out.String(), "Summary for 2024-01: Income=1000.00, Expense=400.00, Balance=600.00")
	assert.Contains(t, out.String(), "Limit: none, Status: No limit set")
}

func TestLimitExceeded(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.NoError(t, runAdd(dir, &out, "income", "1000.00", "2024-01-05", "salary", fixedNow))
	require.NoError(t, runAdd(dir, &out, "expense", "400.00", "2024-01-10", "rent", fixedNow))
	require.NoError(t, runLimitSet(dir, &out, "2024-01", "300.00"))

	out.Reset()
	require.NoError(t, runSummary(dir, &out, "2024-01", fixedNow))
	assert.Contains(t, out.String(), "Limit: 300.00, Status: Limit exceeded")
}

func TestLimitEqualityIsWithin(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.NoError(t, runLimitSet(dir, &out, "2024-02", "500.00"))
	require.NoError(t, runAdd(dir, &out, "expense", "500.00", "2024-02-01", "", fixedNow))

	out.Reset()
	require.NoError(t, runSummary(dir, &out, "2024-02", fixedNow))
	assert.Contains(t, out.String(), "Expense=500.00")
	assert.Contains(t, out.String(), "Status: Within limit")
}

func TestSummary_DefaultsToCurrentMonth(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.NoError(t, runAdd(dir, &out, "expense", "25.00", "2024-01-03", "", fixedNow))

	out.Reset()
	require.NoError(t, runSummary(dir, &out, "", fixedNow))
	assert.Contains(t, out.String(), "Summary for 2024-01")
	assert.Contains(t, out.String(), "Expense=25.00")
}

func TestAdd_DefaultsToToday(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.NoError(t, runAdd(dir, &out, "expense", "5.00", "", "coffee", fixedNow))
	assert.Contains(t, out.String(), "on 2024-01-20")
}

func TestAdd_InvalidInputs(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.Error(t, runAdd(dir, &out, "transfer", "10", "2024-01-05", "", fixedNow))
	require.Error(t, runAdd(dir, &out, "income", "abc", "2024-01-05", "", fixedNow))
	require.Error(t, runAdd(dir, &out, "income", "-10", "2024-01-05", "", fixedNow))
	require.Error(t, runAdd(dir, &out, "income", "10", "2024-13-05", "", fixedNow))

	snap, err := storage.Load(filepath.Join(dir, "budget.json"))
	require.NoError(t, err)
	assert.Empty(t, snap.Transactions, "rejected adds leave the document unchanged")
}

func TestLimitSet_InvalidInputs(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.Error(t, runLimitSet(dir, &out, "2024-13", "100"))
	require.Error(t, runLimitSet(dir, &out, "2024-01", "-1"))
	require.Error(t, runLimitSet(dir, &out, "2024-01", "abc"))
}

func TestMonths_Sorted(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.NoError(t, runAdd(dir, &out, "expense", "10", "2024-03-15", "", fixedNow))
	require.NoError(t, runAdd(dir, &out, "income", "10", "2024-01-02", "", fixedNow))

	out.Reset()
	require.NoError(t, runMonths(dir, &out))
	assert.Equal(t, "2024-01\n2024-03\n", out.String())
}

func TestMonths_Empty(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.NoError(t, runMonths(dir, &out))
	assert.Equal(t, "No data.\n", out.String())
}

func TestMutationsPersistAcrossInvocations(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.NoError(t, runAdd(dir, &out, "income", "100.00", "2024-01-05", "", fixedNow))

	// A fresh invocation reads the same document.
	out.Reset()
	require.NoError(t, runSummary(dir, &out, "2024-01", fixedNow))
	assert.Contains(t, out.String(), "Income=100.00")
}

func TestMutationsAppendActivityLog(t *testing.T) {
	dir := newLedgerDir(t)
	var out bytes.Buffer

	require.NoError(t, runAdd(dir, &out, "expense", "42.00", "2024-01-05", "books", fixedNow))
	require.NoError(t, runLimitSet(dir, &out, "2024-01", "100.00"))

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "add_expense", entries[0].Action)
	assert.Equal(t, "set_limit", entries[1].Action)
}

func TestOpenLedger_CorruptFileDegradesToEmpty(t *testing.T) {
	dir := newLedgerDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "budget.json"), []byte("{broken"), 0o644))

	var out bytes.Buffer
	require.NoError(t, runSummary(dir, &out, "2024-01", fixedNow))
	assert.Contains(t, out.String(), "Income=0.00, Expense=0.00, Balance=0.00")
}

func TestOpenLedger_NoInitNeeded(t *testing.T) {
	// Commands work in a bare directory: defaults apply and the document is
	// created on first mutation.
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, runAdd(dir, &out, "income", "10.00", "2024-01-05", "", fixedNow))
	_, err := os.Stat(filepath.Join(dir, "budget.json"))
	require.NoError(t, err)
}
