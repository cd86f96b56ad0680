// Package core provides the expense record model and amount handling.
//
// Amounts are stored as decimal strings with two fractional digits. All
// arithmetic and validation goes through shopspring/decimal so no float
// rounding can leak into stored values.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SentinelAmount is stored when no amount could be determined from the
// input. The field is always present; it is never omitted.
const SentinelAmount = "0.00"

// NormalizeAmount parses a decimal amount string and renders it with
// exactly two fractional digits. Negative values are rejected: the model
// holds expenses only, refunds and income are not represented.
//
// Examples:
//
//	NormalizeAmount("20") -> "20.00", nil
//	NormalizeAmount("12.50") -> "12.50", nil
//	NormalizeAmount("-3") -> "", ErrInvalidAmount
func NormalizeAmount(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", ErrInvalidAmount
	}
	if d.IsNegative() {
		return "", ErrInvalidAmount
	}
	return d.StringFixed(2), nil
}

// SumAmounts adds a sequence of stored amount strings and returns the total
// with two fractional digits. Malformed amounts contribute nothing; stored
// data is normalized on write so this only matters for hand-edited files.
func SumAmounts(amounts []string) string {
	total := decimal.Zero
	for _, a := range amounts {
		d, err := decimal.NewFromString(a)
		if err != nil {
			continue
		}
		total = total.Add(d)
	}
	return total.StringFixed(2)
}
