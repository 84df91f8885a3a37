// Package expenses stores imported expenses in the repo's ledger/expenses.csv.
// It is the persistence side of an import: the import pipeline only reads a
// snapshot from it and hands it finished payloads.
package expenses

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cleared-dev/bankimport/internal/id"
	"github.com/cleared-dev/bankimport/internal/model"
)

// LedgerFile is the ledger path relative to the repo root.
const LedgerFile = "ledger/expenses.csv"

// Ledger reads and appends expenses for one repo.
type Ledger struct {
	repoRoot string
	now      func() time.Time
}

// NewLedger creates a Ledger rooted at repoRoot.
func NewLedger(repoRoot string) *Ledger {
	return &Ledger{repoRoot: repoRoot, now: time.Now}
}

// Path returns the absolute ledger path.
func (l *Ledger) Path() string {
	return filepath.Join(l.repoRoot, LedgerFile)
}

// ReadAll returns every stored expense. A missing ledger is empty.
func (l *Ledger) ReadAll() ([]Expense, error) {
	f, err := os.Open(l.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	rows, err := ReadExpenses(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", l.Path(), err)
	}
	return rows, nil
}

// ReadExisting returns the duplicate-detection snapshot of the ledger.
func (l *Ledger) ReadExisting() ([]model.ExistingExpense, error) {
	rows, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.ExistingExpense, 0, len(rows))
	for _, e := range rows {
		ex := model.ExistingExpense{
			TransactionDate:  e.TransactionDate,
			AmountMinorUnits: e.AmountMinorUnits,
			Name:             e.Name,
		}
		if !e.CreatedAt.IsZero() {
			ex.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, ex)
	}
	return out, nil
}

// Append assigns IDs, stamps created_at and writes all payloads in a single
// write, creating the ledger with its header when needed. It returns the
// new IDs in payload order.
func (l *Ledger) Append(payloads []model.ExpensePayload) ([]string, error) {
	if len(payloads) == 0 {
		return nil, nil
	}

	existing, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(existing))
	for i, e := range existing {
		ids[i] = e.ID
	}
	seq := id.NewSequencer(ids)

	created := l.now().UTC().Truncate(time.Second)
	rows := make([]Expense, 0, len(payloads))
	newIDs := make([]string, 0, len(payloads))
	for i, p := range payloads {
		year, month, err := id.MonthOf(p.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
		expenseID := seq.Next(year, month)
		rows = append(rows, Expense{ID: expenseID, ExpensePayload: p, CreatedAt: created})
		newIDs = append(newIDs, expenseID)
	}

	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	var buf bytes.Buffer
	if err := WriteExpenses(&buf, rows, isNew); err != nil {
		return nil, fmt.Errorf("encoding expenses: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("appending expenses: %w", err)
	}
	return newIDs, nil
}
