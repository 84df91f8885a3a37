// Package execute turns the confirmed rows of an import preview into expense
// payloads ready for the store.
package execute

import (
	"github.com/cleared-dev/bankimport/internal/model"
)

// MaxNameLength is the longest expense name the store accepts, in runes.
const MaxNameLength = 100

const (
	defaultNotes = "Imported from bank statement"
	memoPrefix   = "Imported: "
)

// Options carries the plan-level values stamped on every payload.
type Options struct {
	PlanID           string
	DefaultBucketID  string
	DefaultFrequency model.Frequency // monthly when empty
	CurrencyCode     string          // optional
}

// Execute emits one payload per selected row, in input order. Unselected
// rows are dropped. The result is complete or empty; nothing is persisted
// here.
func Execute(rows []model.ImportableTransaction, opts Options) []model.ExpensePayload {
	freq := opts.DefaultFrequency
	if freq == "" {
		freq = model.FrequencyMonthly
	}

	var out []model.ExpensePayload
	for _, r := range rows {
		if !r.Selected {
			continue
		}
		bucket := r.BucketID
		if bucket == "" {
			bucket = opts.DefaultBucketID
		}
		category := r.MappedCategory
		if !category.Valid() {
			category = model.CategoryOther
		}
		out = append(out, model.ExpensePayload{
			PlanID:           opts.PlanID,
			BucketID:         bucket,
			Name:             truncate(r.Description, MaxNameLength),
			AmountMinorUnits: r.AmountMinorUnits,
			Category:         category,
			Frequency:        freq,
			IsFixed:          false,
			Notes:            notes(r.Memo),
			TransactionDate:  r.Date,
			CurrencyCode:     opts.CurrencyCode,
		})
	}
	return out
}

func notes(memo string) string {
	if memo == "" {
		return defaultNotes
	}
	return memoPrefix + memo
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
