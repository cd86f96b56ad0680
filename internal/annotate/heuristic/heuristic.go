// Package heuristic implements the default linguistic annotator: a small
// deterministic tokenizer with regex and lexicon based entity spans. It
// needs no model data and no network, and it may legitimately return zero
// entities — the interpreter's fallbacks cover that case.
package heuristic

import (
	"context"
	"strings"
	"unicode"

	"spendlog/internal/annotate"
)

type Annotator struct{}

func New() *Annotator { return &Annotator{} }

// Annotate splits the text on whitespace, strips sentence punctuation from
// token edges, assigns crude tags and derives DATE/MONEY spans.
func (a *Annotator) Annotate(_ context.Context, text string) (annotate.Annotation, error) {
	var tokens []annotate.Token
	for _, f := range strings.Fields(text) {
		f = strings.Trim(f, ",.!?;:")
		if f == "" {
			continue
		}
		tokens = append(tokens, annotate.Token{Text: f, Tag: tagOf(f)})
	}
	return annotate.Annotation{
		Tokens:   tokens,
		Entities: annotate.DetectEntities(tokens),
	}, nil
}

func tagOf(s string) string {
	hasDigit := false
	for _, r := range s {
		if unicode.IsDigit(r) {
			hasDigit = true
			break
		}
	}
	switch {
	case strings.HasPrefix(s, "$") || strings.HasPrefix(s, "€") || strings.HasPrefix(s, "£"):
		return "SYM"
	case hasDigit:
		return "CD"
	default:
		return "NN"
	}
}
