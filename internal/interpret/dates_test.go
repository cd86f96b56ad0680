package interpret

import (
	"testing"
	"time"
)

var anchor = time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		wantISO string
		wantRaw string
	}{
		{
			name:    "yesterday",
			tokens:  []string{"coffee", "yesterday"},
			wantISO: "2024-03-01",
			wantRaw: "yesterday",
		},
		{
			name:    "last night reads as yesterday",
			tokens:  []string{"taxi", "last", "night"},
			wantISO: "2024-03-01",
			wantRaw: "last night",
		},
		{
			name:    "absolute iso date",
			tokens:  []string{"rent", "2024-01-05"},
			wantISO: "2024-01-05",
			wantRaw: "2024-01-05",
		},
		{
			name:    "bare year in range",
			tokens:  []string{"membership", "1999"},
			wantISO: "1999-01-01",
			wantRaw: "1999",
		},
		{
			name:   "short number is an amount not a year",
			tokens: []string{"lunch", "20"},
		},
		{
			name:   "number outside year range",
			tokens: []string{"order", "123456"},
		},
		{
			name:   "decimal literal is an amount",
			tokens: []string{"snack", "12.50"},
		},
		{
			name:   "filler verbs never parse",
			tokens: []string{"I", "spent", "paid", "sent"},
		},
		{
			name:   "plain words have no date",
			tokens: []string{"bought", "socks"},
		},
		{
			name:   "ordinary noun does not read as today",
			tokens: []string{"lunch", "20"},
		},
		{
			name:   "lone preposition does not read as today",
			tokens: []string{"on"},
		},
		{
			name:   "single description word does not read as today",
			tokens: []string{"groceries"},
		},
		{
			name:   "modifier before ordinary noun is not a date phrase",
			tokens: []string{"this", "jacket"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iso, raw := resolveDate(tt.tokens, anchor)
			if iso != tt.wantISO {
				t.Errorf("resolveDate(%v) iso = %q, want %q", tt.tokens, iso, tt.wantISO)
			}
			if raw != tt.wantRaw {
				t.Errorf("resolveDate(%v) raw = %q, want %q", tt.tokens, raw, tt.wantRaw)
			}
		})
	}
}

func TestResolveDateRelativePhrase(t *testing.T) {
	// The exact day "last week" lands on belongs to the date library; the
	// resolver's contract is that it resolves, lies in the past, and keeps
	// the merged phrase for the sanitizer.
	iso, raw := resolveDate([]string{"groceries", "last", "week"}, anchor)
	if raw != "last week" {
		t.Fatalf("raw phrase = %q, want %q", raw, "last week")
	}
	if iso == "" || iso >= "2024-03-02" {
		t.Errorf("iso = %q, want a date before the anchor", iso)
	}
}

func TestNaturalPhrase(t *testing.T) {
	// naturaldate.Parse answers with the base time and a nil error for
	// text it cannot read; the gate keeps such words out of the parser.
	for phrase, want := range map[string]bool{
		"yesterday":  true,
		"monday":     true,
		"last week":  true,
		"this month": true,
		"next year":  true,
		"lunch":      false,
		"for":        false,
		"coffee":     false,
		"this jacket": false,
		"lunch week":  false,
	} {
		if got := naturalPhrase(phrase); got != want {
			t.Errorf("naturalPhrase(%q) = %v, want %v", phrase, got, want)
		}
	}
}

func TestResolveEntityDate(t *testing.T) {
	iso, ok := resolveEntityDate("yesterday", anchor)
	if !ok || iso != "2024-03-01" {
		t.Errorf("resolveEntityDate(yesterday) = %q, %v", iso, ok)
	}
	if _, ok := resolveEntityDate("coffee", anchor); ok {
		t.Error("resolveEntityDate(coffee) should not resolve")
	}
}
