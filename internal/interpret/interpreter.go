// Package interpret turns free-form expense sentences into structured
// ledger records.
//
// The pipeline annotates the message once, resolves a date from the token
// scan (the annotator's DATE entity wins when present and parseable),
// extracts an amount from the MONEY span or a regex fallback, and cleans
// the remaining text into a description. Every path has a fallback —
// today's date, the sentinel amount, an empty description — so
// interpretation is total and never returns an error.
package interpret

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"spendlog/internal/annotate"
	"spendlog/internal/core"
)

type Interpreter struct {
	ann annotate.Annotator
	now func() time.Time
}

func New(ann annotate.Annotator) *Interpreter {
	return NewWithClock(ann, time.Now)
}

// NewWithClock injects the "today" anchor used for relative dates and
// fallbacks. Tests pin it; production passes time.Now via New.
func NewWithClock(ann annotate.Annotator, now func() time.Time) *Interpreter {
	return &Interpreter{ann: ann, now: now}
}

// Interpret converts one message into a record with Deleted=false. It does
// not persist; callers decide what to do with the result.
func (i *Interpreter) Interpret(ctx context.Context, message string) core.ExpenseRecord {
	ann, err := i.ann.Annotate(ctx, message)
	if err != nil || len(ann.Tokens) == 0 {
		if err != nil {
			slog.WarnContext(ctx, "Annotator returned no annotation, using plain tokens",
				"error", err)
		}
		ann = plainTokens(message)
	}

	now := i.now()
	tokens := ann.TokenTexts()

	iso, rawPhrase := resolveDate(tokens, now)
	if span := ann.FirstEntity(annotate.LabelDate); span != "" {
		if d, ok := resolveEntityDate(span, now); ok {
			iso, rawPhrase = d, span
		}
	}
	if iso == "" {
		iso = core.FormatISODate(now)
	}

	rawAmount := extractAmount(message, ann.FirstEntity(annotate.LabelMoney))

	return core.ExpenseRecord{
		Date:        iso,
		Description: sanitize(strings.Join(tokens, " "), iso, rawPhrase, rawAmount),
		Amount:      normalizeRawAmount(rawAmount),
	}
}

func plainTokens(message string) annotate.Annotation {
	var ann annotate.Annotation
	for _, f := range strings.Fields(message) {
		ann.Tokens = append(ann.Tokens, annotate.Token{Text: f})
	}
	return ann
}
