package annotate

import (
	"regexp"
	"strings"
)

// moneyRe matches a currency-marked amount: an optional symbol prefix and a
// decimal-or-integer numeral. Bare numbers are deliberately not matched;
// the interpreter has its own regex fallback for those.
var moneyRe = regexp.MustCompile(`^[$€£]\d+(?:\.\d{1,2})?$`)

// dateWords are single tokens that name a day without a modifier.
var dateWords = map[string]bool{
	"today":     true,
	"yesterday": true,
	"tomorrow":  true,
	"tonight":   true,
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
	"january":   true,
	"february":  true,
	"march":     true,
	"april":     true,
	"may":       true,
	"june":      true,
	"july":      true,
	"august":    true,
	"september": true,
	"october":   true,
	"november":  true,
	"december":  true,
}

// dateNouns combine with a relative modifier ("last week", "next month").
var dateNouns = map[string]bool{
	"day":   true,
	"night": true,
	"week":  true,
	"month": true,
	"year":  true,
}

// IsDateWord reports whether the token names a day or month on its own.
func IsDateWord(s string) bool {
	return dateWords[strings.ToLower(s)]
}

// IsDateNoun reports whether the token combines with a relative modifier
// to form a date phrase.
func IsDateNoun(s string) bool {
	return dateNouns[strings.ToLower(s)]
}

func isModifier(s string) bool {
	switch strings.ToLower(s) {
	case "last", "next", "this":
		return true
	}
	return false
}

// DetectEntities derives DATE and MONEY spans from a token sequence. It is
// the shared entity layer for the local adapters; remote annotators return
// their own spans.
func DetectEntities(tokens []Token) []Entity {
	var out []Entity
	for i := 0; i < len(tokens); i++ {
		text := tokens[i].Text
		lower := strings.ToLower(text)

		if moneyRe.MatchString(text) {
			out = append(out, Entity{Label: LabelMoney, Text: text})
			continue
		}
		// Tokenizers that split the currency symbol off ("$", "12.50")
		// still produce one MONEY span, joined with a space.
		if (text == "$" || text == "€" || text == "£") && i+1 < len(tokens) && numberRe.MatchString(tokens[i+1].Text) {
			out = append(out, Entity{Label: LabelMoney, Text: text + " " + tokens[i+1].Text})
			i++
			continue
		}
		if isModifier(lower) && i+1 < len(tokens) {
			next := strings.ToLower(tokens[i+1].Text)
			if dateNouns[next] || dateWords[next] {
				out = append(out, Entity{Label: LabelDate, Text: text + " " + tokens[i+1].Text})
				i++
				continue
			}
		}
		if dateWords[lower] || isoDateRe.MatchString(text) {
			out = append(out, Entity{Label: LabelDate, Text: text})
		}
	}
	return out
}

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numberRe  = regexp.MustCompile(`^\d+(?:\.\d{1,2})?$`)
)
