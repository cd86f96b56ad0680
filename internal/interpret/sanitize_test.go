package interpret

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		resolvedDate  string
		rawDatePhrase string
		rawAmount     string
		want          string
	}{
		{
			name:          "full sentence",
			text:          "I spent $12.50 on coffee yesterday",
			resolvedDate:  "2024-03-01",
			rawDatePhrase: "yesterday",
			rawAmount:     "$12.50",
			want:          "coffee",
		},
		{
			name:      "bare amount message",
			text:      "lunch 20",
			rawAmount: "20",
			want:      "lunch",
		},
		{
			name:          "paid for phrasing",
			text:          "I paid 30 for groceries last week",
			resolvedDate:  "2024-02-24",
			rawDatePhrase: "last week",
			rawAmount:     "30",
			want:          "groceries",
		},
		{
			name:         "resolved date inside the text",
			text:         "rent 2024-01-05 800",
			resolvedDate: "2024-01-05",
			rawAmount:    "800",
			want:         "rent",
		},
		{
			name: "denylist is case-insensitive",
			text: "i SPENT 5 dollars on snacks",

			rawAmount: "5",
			want:      "snacks",
		},
		{
			name: "inner fillers survive, only edges are trimmed",
			text: "onions for dinner",
			want: "onions for dinner",
		},
		{
			name: "leading filler does not corrupt words",
			text: "on onions",
			want: "onions",
		},
		{
			name: "may collapse to empty",
			text: "I spent $",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitize(tt.text, tt.resolvedDate, tt.rawDatePhrase, tt.rawAmount)
			if got != tt.want {
				t.Errorf("sanitize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotentOnCleanText(t *testing.T) {
	// Text containing no denylist phrase comes back unchanged modulo
	// whitespace normalization.
	clean := []string{"coffee", "weekly groceries", "train ticket home"}
	for _, text := range clean {
		if got := sanitize(text, "", "", ""); got != text {
			t.Errorf("sanitize(%q) = %q, want unchanged", text, got)
		}
	}
}
