package interpret

import (
	"regexp"
	"strings"
)

// denylistPhrases are transaction-verb and currency filler removed from
// descriptions. The order is load-bearing: later entries are substrings of
// earlier ones, and reordering changes output.
var denylistPhrases = []string{
	"I spent",
	"I paid",
	"I sent",
	"I paid for",
	"I spent for",
	"I sent for",
	"I paid $",
	"I spent $",
	"I sent $",
	"I paid for $",
	"I spent on",
	"I sent on",
	"I paid on",
	"$",
	"for $",
	"dollars",
	"dollar",
	"paid",
	"spent",
	"sent",
}

var denylistRes = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(denylistPhrases))
	for i, p := range denylistPhrases {
		out[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(p))
	}
	return out
}()

// edgeFillers are prepositions and pronouns stripped from the start and
// independently from the end of the description, re-checking after every
// removal since a token can be both a leading and a trailing filler once
// prior trims expose it.
var edgeFillers = []string{"on", "for", "to", "I"}

// sanitize cleans the joined token text into a description. Each step is a
// literal case-insensitive substring removal followed by a whitespace
// trim. The result may legitimately be empty.
func sanitize(text, resolvedDate, rawDatePhrase, rawAmount string) string {
	text = stripLiteral(text, resolvedDate)
	text = stripLiteral(text, rawAmount)
	if rawDatePhrase != resolvedDate {
		text = stripLiteral(text, rawDatePhrase)
	}
	for _, re := range denylistRes {
		text = strings.TrimSpace(re.ReplaceAllString(text, ""))
	}
	text = trimEdgeFillers(text)
	return strings.Join(strings.Fields(text), " ")
}

// stripLiteral removes every case-insensitive occurrence of the phrase.
func stripLiteral(s, phrase string) string {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return s
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(phrase))
	if err != nil {
		return s
	}
	return strings.TrimSpace(re.ReplaceAllString(s, ""))
}

func trimEdgeFillers(s string) string {
	s = strings.TrimSpace(s)
	for changed := true; changed; {
		changed = false
		for _, w := range edgeFillers {
			if strings.EqualFold(s, w) {
				return ""
			}
			// whole leading word only, so "on" cannot eat into "onions"
			if len(s) > len(w) && strings.EqualFold(s[:len(w)], w) && s[len(w)] == ' ' {
				s = strings.TrimSpace(s[len(w):])
				changed = true
			}
			if len(s) > len(w) && strings.EqualFold(s[len(s)-len(w):], w) && s[len(s)-len(w)-1] == ' ' {
				s = strings.TrimSpace(s[:len(s)-len(w)])
				changed = true
			}
		}
	}
	return s
}
