package annotate

import "testing"

func toks(words ...string) []Token {
	out := make([]Token, len(words))
	for i, w := range words {
		out[i] = Token{Text: w}
	}
	return out
}

func TestDetectEntities(t *testing.T) {
	tests := []struct {
		name string
		in   []Token
		want []Entity
	}{
		{
			name: "money with symbol",
			in:   toks("I", "spent", "$12.50", "on", "coffee"),
			want: []Entity{{Label: LabelMoney, Text: "$12.50"}},
		},
		{
			name: "split currency symbol",
			in:   toks("paid", "$", "20", "for", "lunch"),
			want: []Entity{{Label: LabelMoney, Text: "$ 20"}},
		},
		{
			name: "single date word",
			in:   toks("coffee", "yesterday"),
			want: []Entity{{Label: LabelDate, Text: "yesterday"}},
		},
		{
			name: "modifier merges with noun",
			in:   toks("groceries", "last", "week"),
			want: []Entity{{Label: LabelDate, Text: "last week"}},
		},
		{
			name: "iso date literal",
			in:   toks("rent", "2024-01-05"),
			want: []Entity{{Label: LabelDate, Text: "2024-01-05"}},
		},
		{
			name: "bare numbers are not money",
			in:   toks("lunch", "20"),
			want: nil,
		},
		{
			name: "no entities at all",
			in:   toks("something", "completely", "different"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectEntities(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("DetectEntities = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entity %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
