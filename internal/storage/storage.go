// Package storage persists the full ledger state as a single JSON document,
// rewritten after every mutation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/month"
)

// CorruptError reports a data file that exists but could not be decoded. The
// caller may warn and continue from an empty ledger, or abort.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt ledger file %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Snapshot is the full persisted state.
type Snapshot struct {
	Transactions []model.Transaction
	Limits       map[month.Month]decimal.Decimal
}

// amount serializes a decimal as a bare JSON number rather than the quoted
// string shopspring/decimal emits by default.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = amount(d)
	return nil
}

// document mirrors the on-disk JSON shape.
type document struct {
	Transactions  []docTransaction  `json:"transactions"`
	ExpenseLimits map[string]amount `json:"expense_limits"`
}

type docTransaction struct {
	Type        string `json:"type"`
	Amount      amount `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Load reads the ledger document at path. A missing file is the expected
// first-run case and yields an empty snapshot with no error. A file that
// exists but fails to decode, or that holds an invalid record, yields an
// empty snapshot plus a *CorruptError.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return emptySnapshot(), fmt.Errorf("reading ledger file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return emptySnapshot(), &CorruptError{Path: path, Err: err}
	}

	snap, err := fromDocument(doc)
	if err != nil {
		return emptySnapshot(), &CorruptError{Path: path, Err: err}
	}
	return snap, nil
}

// Save overwrites the ledger document at path with the full snapshot. The
// write goes through a temp file in the same directory plus a rename, so a
// failed write never truncates existing data.
func Save(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(toDocument(snap), "", "    ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}

// FileSaver persists snapshots to a fixed path. It satisfies ledger.Saver.
type FileSaver struct {
	Path string
}

// Save writes the store state to the saver's path.
func (f FileSaver) Save(transactions []model.Transaction, limits map[month.Month]decimal.Decimal) error {
	return Save(f.Path, Snapshot{Transactions: transactions, Limits: limits})
}

func emptySnapshot() Snapshot {
	return Snapshot{Limits: make(map[month.Month]decimal.Decimal)}
}

func toDocument(snap Snapshot) document {
	doc := document{
		Transactions:  make([]docTransaction, 0, len(snap.Transactions)),
		ExpenseLimits: make(map[string]amount, len(snap.Limits)),
	}
	for _, txn := range snap.Transactions {
		doc.Transactions = append(doc.Transactions, docTransaction{
			Type:        string(txn.Kind),
			Amount:      amount(txn.Amount),
			Date:        txn.Date.Format(month.DateKey),
			Description: txn.Description,
		})
	}
	for m, limit := range snap.Limits {
		doc.ExpenseLimits[m.String()] = amount(limit)
	}
	return doc
}

func fromDocument(doc document) (Snapshot, error) {
	snap := emptySnapshot()
	for i, rec := range doc.Transactions {
		date, err := month.ParseDate(rec.Date)
		if err != nil {
			return Snapshot{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		txn, err := model.New(model.Kind(rec.Type), decimal.Decimal(rec.Amount), date, rec.Description)
		if err != nil {
			return Snapshot{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		snap.Transactions = append(snap.Transactions, txn)
	}
	for key, limit := range doc.ExpenseLimits {
		m, err := month.Parse(key)
		if err != nil {
			return Snapshot{}, fmt.Errorf("expense limit %q: %w", key, err)
		}
		if decimal.Decimal(limit).IsNegative() {
			return Snapshot{}, fmt.Errorf("expense limit %q: negative value %s", key, decimal.Decimal(limit))
		}
		snap.Limits[m] = decimal.Decimal(limit)
	}
	return snap, nil
}
