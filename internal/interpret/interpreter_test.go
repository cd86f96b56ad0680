package interpret

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendlog/internal/annotate"
	"spendlog/internal/annotate/heuristic"
)

type failingAnnotator struct{}

func (failingAnnotator) Annotate(context.Context, string) (annotate.Annotation, error) {
	return annotate.Annotation{}, errors.New("annotator down")
}

type cannedAnnotator struct{ ann annotate.Annotation }

func (c cannedAnnotator) Annotate(context.Context, string) (annotate.Annotation, error) {
	return c.ann, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
}

func TestInterpretCoffeeScenario(t *testing.T) {
	interp := NewWithClock(heuristic.New(), fixedNow)

	rec := interp.Interpret(context.Background(), "I spent $12.50 on coffee yesterday")

	if rec.Date != "2024-03-01" {
		t.Errorf("date = %q, want %q", rec.Date, "2024-03-01")
	}
	if rec.Amount != "12.50" {
		t.Errorf("amount = %q, want %q", rec.Amount, "12.50")
	}
	if rec.Description != "coffee" {
		t.Errorf("description = %q, want %q", rec.Description, "coffee")
	}
	if rec.Deleted {
		t.Error("new records must not be deleted")
	}
}

func TestInterpretLunchScenario(t *testing.T) {
	interp := NewWithClock(heuristic.New(), fixedNow)

	rec := interp.Interpret(context.Background(), "lunch 20")

	if rec.Date != "2024-03-02" {
		t.Errorf("date = %q, want today %q", rec.Date, "2024-03-02")
	}
	if rec.Amount != "20.00" {
		t.Errorf("amount = %q, want %q", rec.Amount, "20.00")
	}
	if rec.Description != "lunch" {
		t.Errorf("description = %q, want %q", rec.Description, "lunch")
	}
}

func TestInterpretFallsBackToToday(t *testing.T) {
	interp := NewWithClock(heuristic.New(), fixedNow)

	rec := interp.Interpret(context.Background(), "new headphones 89.99")
	if rec.Date != "2024-03-02" {
		t.Errorf("date = %q, want today", rec.Date)
	}
}

func TestInterpretSentinelAmount(t *testing.T) {
	interp := NewWithClock(heuristic.New(), fixedNow)

	rec := interp.Interpret(context.Background(), "coffee with friends")
	if rec.Amount != "0.00" {
		t.Errorf("amount = %q, want sentinel", rec.Amount)
	}
	if rec.Description != "coffee with friends" {
		t.Errorf("description = %q, want it untouched", rec.Description)
	}
}

func TestInterpretEntityDateWins(t *testing.T) {
	// The annotator reports an explicit DATE span disagreeing with what
	// the token scan would find; the entity takes precedence.
	ann := cannedAnnotator{ann: annotate.Annotation{
		Tokens: []annotate.Token{
			{Text: "cinema"}, {Text: "tickets"}, {Text: "yesterday"}, {Text: "2024-01-05"},
		},
		Entities: []annotate.Entity{{Label: annotate.LabelDate, Text: "2024-01-05"}},
	}}
	interp := NewWithClock(ann, fixedNow)

	rec := interp.Interpret(context.Background(), "cinema tickets yesterday 2024-01-05")
	if rec.Date != "2024-01-05" {
		t.Errorf("date = %q, want the annotator's %q", rec.Date, "2024-01-05")
	}
}

func TestInterpretSurvivesAnnotatorFailure(t *testing.T) {
	interp := NewWithClock(failingAnnotator{}, fixedNow)

	rec := interp.Interpret(context.Background(), "I spent $12.50 on coffee yesterday")

	if rec.Date != "2024-03-01" {
		t.Errorf("date = %q, want %q", rec.Date, "2024-03-01")
	}
	if rec.Amount != "12.50" {
		t.Errorf("amount = %q, want %q", rec.Amount, "12.50")
	}
	if rec.Description != "coffee" {
		t.Errorf("description = %q, want %q", rec.Description, "coffee")
	}
}
