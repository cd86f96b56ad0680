package openai

import (
	"testing"

	"spendlog/internal/annotate"
)

func TestDecode(t *testing.T) {
	content := "```json\n" +
		`{"tokens":[{"text":"coffee","tag":"NN"},{"text":"yesterday","tag":"NN"}],` +
		`"entities":[{"label":"date","text":"yesterday"}]}` + "\n```"

	ann, err := decode(content)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ann.Tokens) != 2 {
		t.Fatalf("tokens = %+v, want 2", ann.Tokens)
	}
	if got := ann.FirstEntity(annotate.LabelDate); got != "yesterday" {
		t.Errorf("DATE span = %q, want %q (labels are upper-cased)", got, "yesterday")
	}
}

func TestDecodeRejectsProse(t *testing.T) {
	if _, err := decode("Sure! Here is the annotation you asked for."); err == nil {
		t.Error("expected an error for a non-JSON reply")
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Error("expected an error without an API key")
	}
}
