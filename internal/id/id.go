package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatExpenseID returns an expense ID like "2025-01-001" for the month the
// expense happened in.
func FormatExpenseID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseExpenseID parses "2025-01-001" into year, month, seq.
func ParseExpenseID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid expense ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in expense ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in expense ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in expense ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// MonthOf extracts year and month from an ISO date such as "2025-01-15".
func MonthOf(date string) (year, month int, err error) {
	if len(date) < 7 || date[4] != '-' {
		return 0, 0, fmt.Errorf("invalid date %q", date)
	}
	year, err = strconv.Atoi(date[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in date %q: %w", date, err)
	}
	month, err = strconv.Atoi(date[5:7])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in date %q: %w", date, err)
	}
	return year, month, nil
}

// Sequencer hands out the next free sequence number per month.
type Sequencer struct {
	last map[[2]int]int
}

// NewSequencer seeds a Sequencer from existing IDs. IDs that do not parse
// are ignored.
func NewSequencer(existing []string) *Sequencer {
	s := &Sequencer{last: make(map[[2]int]int)}
	for _, id := range existing {
		year, month, seq, err := ParseExpenseID(id)
		if err != nil {
			continue
		}
		key := [2]int{year, month}
		if seq > s.last[key] {
			s.last[key] = seq
		}
	}
	return s
}

// Next returns a new ID for the given month.
func (s *Sequencer) Next(year, month int) string {
	key := [2]int{year, month}
	s.last[key]++
	return FormatExpenseID(year, month, s.last[key])
}
