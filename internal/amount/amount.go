// Package amount converts bank-formatted money strings into minor units.
package amount

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Amount is an unsigned minor-unit value with its sign carried separately.
type Amount struct {
	MinorUnits int64
	Negative   bool
}

// ErrEmpty is returned when nothing numeric is left after cleanup.
var ErrEmpty = errors.New("empty amount")

// ErrOutOfRange is returned when the minor-unit value does not fit in an int64.
var ErrOutOfRange = errors.New("amount out of range")

const currencySymbols = "$€£¥₹₩₽₺₪¢"

// Parse reads amounts like "$1,234.56", "(1234.56)", "-1234.56" or "€ 5".
// Parenthesis and leading-minus notation both mark the value negative.
func Parse(s string) (Amount, error) {
	v := strings.TrimSpace(s)

	parens := false
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		parens = true
		v = v[1 : len(v)-1]
	}

	v = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' || strings.ContainsRune(currencySymbols, r) {
			return -1
		}
		return r
	}, v)

	minus := false
	switch {
	case strings.HasPrefix(v, "-"):
		minus = true
		v = v[1:]
	case strings.HasPrefix(v, "+"):
		v = v[1:]
	}
	if v == "" {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, ErrEmpty)
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if d.IsNegative() {
		// "--5" or "-(5)" style inputs; the sign was already consumed once.
		return Amount{}, fmt.Errorf("parsing amount %q: unexpected sign", s)
	}

	minor := d.Shift(2).Round(0)
	if !minor.BigInt().IsInt64() {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, ErrOutOfRange)
	}

	return Amount{
		MinorUnits: minor.IntPart(),
		Negative:   parens || minus,
	}, nil
}

// Decimal returns the signed major-unit value, e.g. -5.00 for 500 negative.
func (a Amount) Decimal() decimal.Decimal {
	d := decimal.New(a.MinorUnits, -2)
	if a.Negative {
		return d.Neg()
	}
	return d
}

// String renders the amount with two decimal places.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// FromMinorUnits builds an Amount from a signed minor-unit value.
func FromMinorUnits(v int64) Amount {
	if v < 0 {
		return Amount{MinorUnits: -v, Negative: true}
	}
	return Amount{MinorUnits: v}
}

// FromDecimal converts a signed major-unit decimal back to an Amount.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{
		MinorUnits: d.Abs().Shift(2).Round(0).IntPart(),
		Negative:   d.IsNegative(),
	}
}
