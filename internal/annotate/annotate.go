// Package annotate defines the linguistic annotator port consumed by the
// message interpreter, plus the shared entity span detection used by its
// local adapters.
//
// An annotator turns raw text into ordered tokens with part-of-speech tags
// and labeled entity spans. Implementations live in subpackages; the
// interpreter treats them as a black box and tolerates annotations with no
// entities at all.
package annotate

import "context"

// Entity labels the interpreter understands. Adapters may emit others; the
// interpreter ignores labels it does not know.
const (
	LabelDate  = "DATE"
	LabelMoney = "MONEY"
)

type (
	// Token is one unit of the tokenized input.
	Token struct {
		Text string
		Tag  string // part-of-speech tag, adapter-specific vocabulary
	}

	// Entity is a contiguous token span labeled with a semantic category.
	Entity struct {
		Label string
		Text  string // span token text joined with single spaces
	}

	// Annotation is the full result for one input sentence.
	Annotation struct {
		Tokens   []Token
		Entities []Entity
	}
)

// Annotator is the port for the external linguistic capability.
type Annotator interface {
	Annotate(ctx context.Context, text string) (Annotation, error)
}

// TokenTexts returns the token strings in order.
func (a Annotation) TokenTexts() []string {
	out := make([]string, len(a.Tokens))
	for i, t := range a.Tokens {
		out[i] = t.Text
	}
	return out
}

// FirstEntity returns the text of the first entity with the given label,
// or "" when the annotation carries none.
func (a Annotation) FirstEntity(label string) string {
	for _, e := range a.Entities {
		if e.Label == label {
			return e.Text
		}
	}
	return ""
}
