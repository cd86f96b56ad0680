package core

import "testing"

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "integer gains fraction", in: "20", want: "20.00"},
		{name: "two decimals kept", in: "12.50", want: "12.50"},
		{name: "one decimal padded", in: "4.5", want: "4.50"},
		{name: "extra precision rounded", in: "1.005", want: "1.01"},
		{name: "surrounding whitespace", in: " 7 ", want: "7.00"},
		{name: "zero is valid", in: "0", want: "0.00"},
		{name: "negative rejected", in: "-3", wantErr: true},
		{name: "currency symbol rejected", in: "$12.50", wantErr: true},
		{name: "words rejected", in: "twelve", wantErr: true},
		{name: "empty rejected", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeAmount(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeAmount(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeAmount(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSumAmounts(t *testing.T) {
	got := SumAmounts([]string{"12.50", "4.50", "0.00"})
	if got != "17.00" {
		t.Errorf("SumAmounts = %q, want %q", got, "17.00")
	}

	// Malformed entries are skipped, not fatal.
	got = SumAmounts([]string{"10.00", "garbage"})
	if got != "10.00" {
		t.Errorf("SumAmounts with junk = %q, want %q", got, "10.00")
	}
}

func TestRecordMatches(t *testing.T) {
	rec := ExpenseRecord{Date: "2024-03-01", Description: "coffee", Amount: "12.50"}

	if !rec.Matches("2024-03-01", "coffee", "12.50") {
		t.Error("expected triple to match")
	}
	if rec.Matches("2024-03-02", "coffee", "12.50") {
		t.Error("different date must not match")
	}

	rec.Deleted = true
	if !rec.Matches("2024-03-01", "coffee", "12.50") {
		t.Error("deleted flag must not affect identity")
	}
}
