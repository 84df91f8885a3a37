// Package preview assembles parsed transactions into a reviewable import
// preview. Building a preview has no side effects, so it can be recomputed
// whenever the user changes a selection.
package preview

import (
	"github.com/cleared-dev/bankimport/internal/categorize"
	"github.com/cleared-dev/bankimport/internal/dedup"
	"github.com/cleared-dev/bankimport/internal/model"
)

// Options configures the collaborators Build uses. Zero values select the
// embedded category table and the default fingerprint length.
type Options struct {
	Categorizer  *categorize.Categorizer
	Deduplicator dedup.Deduplicator
}

// Build flags duplicates, maps categories, assigns bucketID and sets the
// default selection (expenses that are not duplicates) for every transaction.
func Build(txns []model.ParsedTransaction, existing []model.ExistingExpense, bucketID string, opts Options) model.ImportPreview {
	cat := opts.Categorizer
	if cat == nil {
		cat = categorize.Default()
	}
	dd := dedup.New(opts.Deduplicator.DescriptionLength)
	known := dd.Existing(existing)

	rows := make([]model.ImportableTransaction, 0, len(txns))
	for _, t := range txns {
		fp := dd.ForTransaction(t)
		dup := known.Has(fp)
		rows = append(rows, model.ImportableTransaction{
			ParsedTransaction: t,
			BucketID:          bucketID,
			MappedCategory:    cat.Resolve(t.Category, t.Description),
			IsDuplicate:       dup,
			Selected:          t.IsExpense && !dup,
			Fingerprint:       fp,
		})
	}
	return Recount(rows)
}

// Recount recomputes the aggregate fields for an edited transaction list.
func Recount(rows []model.ImportableTransaction) model.ImportPreview {
	p := model.ImportPreview{
		Transactions: rows,
		TotalCount:   len(rows),
	}
	for _, r := range rows {
		if r.IsExpense {
			p.ExpenseCount++
		} else {
			p.IncomeCount++
		}
		if r.IsDuplicate {
			p.DuplicateCount++
		}
		if p.DateRange == nil {
			p.DateRange = &model.DateRange{Earliest: r.Date, Latest: r.Date}
			continue
		}
		if r.Date < p.DateRange.Earliest {
			p.DateRange.Earliest = r.Date
		}
		if r.Date > p.DateRange.Latest {
			p.DateRange.Latest = r.Date
		}
	}
	return p
}

// SelectedCount returns how many rows are currently selected.
func SelectedCount(p model.ImportPreview) int {
	n := 0
	for _, r := range p.Transactions {
		if r.Selected {
			n++
		}
	}
	return n
}

// SetSelected returns a copy of p with the row at index selected or not.
// Out-of-range indexes leave the preview unchanged.
func SetSelected(p model.ImportPreview, index int, selected bool) model.ImportPreview {
	if index < 0 || index >= len(p.Transactions) {
		return p
	}
	rows := make([]model.ImportableTransaction, len(p.Transactions))
	copy(rows, p.Transactions)
	rows[index].Selected = selected
	return Recount(rows)
}
