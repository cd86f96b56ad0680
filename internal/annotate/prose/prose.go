// Package prose adapts the jdkato/prose NLP pipeline to the annotator
// port. It supplies real tokenization and part-of-speech tags; DATE and
// MONEY spans are layered on top of its tokens, since prose's built-in NER
// covers persons and places but not dates or amounts.
//
// Building the first document loads the model data, which is why callers
// wrap this adapter in annotate.Warm.
package prose

import (
	"context"
	"fmt"

	prose "github.com/jdkato/prose/v2"

	"spendlog/internal/annotate"
)

type Annotator struct{}

// New builds the adapter and forces the model load by running the pipeline
// once, so that the cost lands in the warm-up phase instead of the first
// user message.
func New() (*Annotator, error) {
	a := &Annotator{}
	if _, err := a.Annotate(context.Background(), "warm up"); err != nil {
		return nil, fmt.Errorf("load prose model: %w", err)
	}
	return a, nil
}

func (a *Annotator) Annotate(_ context.Context, text string) (annotate.Annotation, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return annotate.Annotation{}, fmt.Errorf("annotate text: %w", err)
	}

	var tokens []annotate.Token
	for _, t := range doc.Tokens() {
		tokens = append(tokens, annotate.Token{Text: t.Text, Tag: t.Tag})
	}

	entities := annotate.DetectEntities(tokens)
	for _, e := range doc.Entities() {
		entities = append(entities, annotate.Entity{Label: e.Label, Text: e.Text})
	}

	return annotate.Annotation{Tokens: tokens, Entities: entities}, nil
}
