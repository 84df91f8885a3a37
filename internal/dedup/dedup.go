// Package dedup flags parsed transactions that already exist as expenses.
//
// Matching is exact on a fingerprint of date, amount and a truncated,
// lowercased description. An undetected duplicate can still be deselected by
// the user; a false match would hide a real transaction, so there is no fuzzy
// matching.
package dedup

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/bankimport/internal/model"
)

// DefaultDescriptionLength is the number of description runes that take part
// in a fingerprint.
const DefaultDescriptionLength = 50

// Deduplicator computes fingerprints with a fixed description length.
type Deduplicator struct {
	DescriptionLength int
}

// New returns a Deduplicator; n <= 0 selects DefaultDescriptionLength.
func New(n int) Deduplicator {
	if n <= 0 {
		n = DefaultDescriptionLength
	}
	return Deduplicator{DescriptionLength: n}
}

// Fingerprint uses DefaultDescriptionLength.
func Fingerprint(date string, amountMinorUnits int64, description string) string {
	return New(0).Fingerprint(date, amountMinorUnits, description)
}

// Fingerprint returns "date|amount|description" where description is
// lowercased, cut to DescriptionLength runes and then trimmed.
func (d Deduplicator) Fingerprint(date string, amountMinorUnits int64, description string) string {
	n := d.DescriptionLength
	if n <= 0 {
		n = DefaultDescriptionLength
	}
	desc := []rune(strings.ToLower(description))
	if len(desc) > n {
		desc = desc[:n]
	}
	return fmt.Sprintf("%s|%d|%s", date, amountMinorUnits, strings.TrimSpace(string(desc)))
}

// ForTransaction fingerprints a parsed transaction.
func (d Deduplicator) ForTransaction(t model.ParsedTransaction) string {
	return d.Fingerprint(t.Date, t.AmountMinorUnits, t.Description)
}

// ForExpense fingerprints a stored expense. Records without a transaction
// date use the date part of their creation timestamp.
func (d Deduplicator) ForExpense(e model.ExistingExpense) string {
	date := e.TransactionDate
	if date == "" {
		date = e.CreatedAt
		if len(date) > 10 {
			date = date[:10]
		}
	}
	return d.Fingerprint(date, e.AmountMinorUnits, e.Name)
}

// Set is a set of fingerprints.
type Set map[string]struct{}

// Has reports whether key is in the set.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Existing fingerprints every stored expense.
func (d Deduplicator) Existing(existing []model.ExistingExpense) Set {
	s := make(Set, len(existing))
	for _, e := range existing {
		s[d.ForExpense(e)] = struct{}{}
	}
	return s
}

// Duplicates returns the fingerprints shared by a new transaction and a
// stored expense.
func (d Deduplicator) Duplicates(txns []model.ParsedTransaction, existing []model.ExistingExpense) Set {
	known := d.Existing(existing)
	dups := make(Set)
	for _, t := range txns {
		if key := d.ForTransaction(t); known.Has(key) {
			dups[key] = struct{}{}
		}
	}
	return dups
}
