package expenses

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bankimport/internal/amount"
	"github.com/cleared-dev/bankimport/internal/model"
)

// Expense is one stored row of expenses.csv.
type Expense struct {
	ID string
	model.ExpensePayload
	CreatedAt time.Time
}

// Header is the CSV header for expenses.csv.
const Header = "expense_id,plan_id,bucket_id,name,amount,category,frequency,is_fixed,notes,transaction_date,currency_code,created_at"

const (
	numFields   = 12
	colID       = 0
	colPlan     = 1
	colBucket   = 2
	colName     = 3
	colAmount   = 4
	colCategory = 5
	colFreq     = 6
	colFixed    = 7
	colNotes    = 8
	colTxnDate  = 9
	colCurrency = 10
	colCreated  = 11
)

// ReadExpenses reads all rows from an expenses.csv reader.
func ReadExpenses(r io.Reader) ([]Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var out []Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// WriteExpenses writes rows to w, with the header when header is true.
func WriteExpenses(w io.Writer, rows []Expense, header bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if header {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range rows {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colPlan] = e.PlanID
	row[colBucket] = e.BucketID
	row[colName] = e.Name
	row[colAmount] = amount.Amount{MinorUnits: e.AmountMinorUnits}.String()
	row[colCategory] = string(e.Category)
	row[colFreq] = string(e.Frequency)
	row[colFixed] = strconv.FormatBool(e.IsFixed)
	row[colNotes] = e.Notes
	row[colTxnDate] = e.TransactionDate
	row[colCurrency] = e.CurrencyCode
	if !e.CreatedAt.IsZero() {
		row[colCreated] = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (Expense, error) {
	if len(record) != numFields {
		return Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amt, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	if amt.IsNegative() {
		return Expense{}, fmt.Errorf("parsing amount %q: negative", record[colAmount])
	}

	fixed := false
	if record[colFixed] != "" {
		fixed, err = strconv.ParseBool(record[colFixed])
		if err != nil {
			return Expense{}, fmt.Errorf("parsing is_fixed %q: %w", record[colFixed], err)
		}
	}

	var created time.Time
	if record[colCreated] != "" {
		created, err = time.Parse(time.RFC3339, record[colCreated])
		if err != nil {
			return Expense{}, fmt.Errorf("parsing created_at %q: %w", record[colCreated], err)
		}
	}

	return Expense{
		ID: record[colID],
		ExpensePayload: model.ExpensePayload{
			PlanID:           record[colPlan],
			BucketID:         record[colBucket],
			Name:             record[colName],
			AmountMinorUnits: amount.FromDecimal(amt).MinorUnits,
			Category:         model.Category(record[colCategory]),
			Frequency:        model.Frequency(record[colFreq]),
			IsFixed:          fixed,
			Notes:            record[colNotes],
			TransactionDate:  record[colTxnDate],
			CurrencyCode:     record[colCurrency],
		},
		CreatedAt: created,
	}, nil
}
