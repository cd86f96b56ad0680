package interpret

import (
	"regexp"

	"spendlog/internal/core"
)

// amountRe finds the first decimal-or-integer numeral in free text. This
// is the fallback path when the annotator produced no MONEY span; it takes
// the first occurrence and makes no attempt to disambiguate further.
var amountRe = regexp.MustCompile(`\d+(\.\d{2})?`)

// extractAmount returns the raw amount text found in the message: the
// annotator's MONEY span verbatim when present, otherwise the first
// numeral in the raw text. "" means no amount was found.
func extractAmount(raw, moneySpan string) string {
	if moneySpan != "" {
		return moneySpan
	}
	return amountRe.FindString(raw)
}

// normalizeRawAmount converts a raw extraction into the stored form. MONEY
// spans often carry currency text ("$ 12.50"), so a failed parse retries
// on the first numeral inside the span before giving up on the sentinel.
func normalizeRawAmount(raw string) string {
	if raw == "" {
		return core.SentinelAmount
	}
	if n, err := core.NormalizeAmount(raw); err == nil {
		return n
	}
	if m := amountRe.FindString(raw); m != "" {
		if n, err := core.NormalizeAmount(m); err == nil {
			return n
		}
	}
	return core.SentinelAmount
}
