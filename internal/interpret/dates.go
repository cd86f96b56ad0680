package interpret

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	naturaldate "github.com/tj/go-naturaldate"

	"spendlog/internal/annotate"
	"spendlog/internal/core"
)

// fillerWords are tokens the date libraries are prone to misreading as
// dates. They are filtered before any parse is attempted.
var fillerWords = map[string]bool{
	"i":     true,
	"spent": true,
	"paid":  true,
	"sent":  true,
}

// decimalRe matches amount-shaped literals such as "12.50", which are
// cheaper to reject up front than to parse and discard.
var decimalRe = regexp.MustCompile(`^\d+\.\d{1,2}$`)

// resolveDate scans the token sequence in order and returns the first
// candidate that reads as a calendar date: the ISO form plus the raw token
// or phrase, which the sanitizer later strips from the description. Both
// are "" when nothing in the message resolves.
func resolveDate(tokens []string, now time.Time) (iso, raw string) {
	for _, cand := range mergeModifiers(tokens) {
		lower := strings.ToLower(cand)

		if lower == "last night" {
			// synonym the natural-date grammar does not know
			if t, ok := parseCandidate("yesterday", now); ok {
				return core.FormatISODate(t), cand
			}
			continue
		}
		if skipCandidate(cand, lower) {
			continue
		}
		if t, ok := parseCandidate(cand, now); ok {
			return core.FormatISODate(t), cand
		}
	}
	return "", ""
}

// resolveEntityDate resolves an annotator DATE span through the same
// pipeline as the token scan.
func resolveEntityDate(span string, now time.Time) (string, bool) {
	iso, _ := resolveDate(strings.Fields(span), now)
	return iso, iso != ""
}

// mergeModifiers concatenates a relative-time modifier with the token that
// follows it. The merge must run before the skip/parse loop: "last" alone
// is not a date and "week" alone resolves to the wrong one.
func mergeModifiers(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		switch strings.ToLower(tok) {
		case "last", "next", "this":
			if i+1 < len(tokens) {
				out = append(out, tok+" "+tokens[i+1])
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

// skipCandidate applies the precedence filters from cheapest to most
// specific: filler words, short numerals that are amounts or counts,
// numerals outside the plausible year range, and decimal literals.
func skipCandidate(cand, lower string) bool {
	if fillerWords[lower] {
		return true
	}
	if isNumeric(cand) {
		if len(cand) < 4 {
			return true
		}
		year, err := strconv.Atoi(cand)
		if err != nil || year < 1900 || year > 2100 {
			return true
		}
		return false
	}
	return decimalRe.MatchString(cand)
}

// parseCandidate tries the candidate as an absolute date when it carries
// digits and as a natural-language expression otherwise. Relative
// expressions are anchored at now with a past preference, matching how
// people report expenses.
func parseCandidate(s string, now time.Time) (time.Time, bool) {
	if containsDigit(s) {
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if !naturalPhrase(s) {
		return time.Time{}, false
	}
	t, err := naturaldate.Parse(s, now, naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// naturalPhrase gates the natural-language parser to expressions its
// grammar covers. naturaldate.Parse returns the base time with a nil
// error for text it cannot read, so without the gate any ordinary word
// would "resolve" to today.
func naturalPhrase(s string) bool {
	fields := strings.Fields(strings.ToLower(s))
	switch len(fields) {
	case 1:
		return annotate.IsDateWord(fields[0])
	case 2:
		if fields[0] != "last" && fields[0] != "next" && fields[0] != "this" {
			return false
		}
		return annotate.IsDateNoun(fields[1]) || annotate.IsDateWord(fields[1])
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
