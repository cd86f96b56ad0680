package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"spendlog/internal/core"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "expenses.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func rec(date, desc, amount string) core.ExpenseRecord {
	return core.ExpenseRecord{Date: date, Description: desc, Amount: amount}
}

func TestMissingFileInitializesEmpty(t *testing.T) {
	s := newStore(t)

	recs, err := s.Active(context.Background())
	if err != nil {
		t.Fatalf("Active on missing file: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Active = %+v, want empty", recs)
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for _, r := range []core.ExpenseRecord{
		rec("2024-03-01", "coffee", "12.50"),
		rec("2024-03-01", "lunch", "20.00"),
		rec("2024-03-02", "groceries", "54.30"),
	} {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	recs, err := s.Active(ctx)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Active has %d records, want 3", len(recs))
	}
	if recs[2].Description != "groceries" {
		t.Errorf("last record = %+v, want the newest append", recs[2])
	}
}

func TestDeleteRestoreCycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, rec("2024-03-01", "coffee", "12.50")); err != nil {
		t.Fatal(err)
	}

	if err := s.MarkDeleted(ctx, "2024-03-01", "coffee", "12.50"); err != nil {
		t.Fatalf("MarkDeleted: %v", err)
	}

	active, _ := s.Active(ctx)
	trashed, _ := s.Trashed(ctx)
	if len(active) != 0 || len(trashed) != 1 {
		t.Fatalf("after delete: active=%d trashed=%d, want 0/1", len(active), len(trashed))
	}

	if err := s.Restore(ctx, "2024-03-01", "coffee", "12.50"); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	active, _ = s.Active(ctx)
	trashed, _ = s.Trashed(ctx)
	if len(active) != 1 || len(trashed) != 0 {
		t.Fatalf("after restore: active=%d trashed=%d, want 1/0", len(active), len(trashed))
	}

	// restoring again is a no-op, not an error
	if err := s.Restore(ctx, "2024-03-01", "coffee", "12.50"); err != nil {
		t.Errorf("second Restore: %v", err)
	}
	active, _ = s.Active(ctx)
	if len(active) != 1 {
		t.Errorf("second restore changed the store: %+v", active)
	}
}

func TestDeleteMissIsNoOp(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.MarkDeleted(ctx, "2024-03-01", "nothing", "1.00"); err != nil {
		t.Errorf("MarkDeleted on missing record: %v", err)
	}
}

func TestDeleteFirstMatchOnly(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	// duplicate triples are ambiguous by design; the first match is acted on
	_ = s.Append(ctx, rec("2024-03-01", "coffee", "12.50"))
	_ = s.Append(ctx, rec("2024-03-01", "coffee", "12.50"))

	if err := s.MarkDeleted(ctx, "2024-03-01", "coffee", "12.50"); err != nil {
		t.Fatal(err)
	}

	active, _ := s.Active(ctx)
	trashed, _ := s.Trashed(ctx)
	if len(active) != 1 || len(trashed) != 1 {
		t.Errorf("active=%d trashed=%d, want 1/1", len(active), len(trashed))
	}
}

func TestRoundTripThroughNewStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.json")
	ctx := context.Background()

	s1, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = s1.Append(ctx, rec("2024-03-01", "coffee", "12.50"))
	_ = s1.Append(ctx, rec("2024-03-02", "lunch", "20.00"))
	_ = s1.MarkDeleted(ctx, "2024-03-02", "lunch", "20.00")

	// a second store handle over the same file sees identical state
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	active, err := s2.Active(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0] != rec("2024-03-01", "coffee", "12.50") {
		t.Errorf("reloaded active = %+v", active)
	}
	trashed, _ := s2.Trashed(ctx)
	if len(trashed) != 1 || !trashed[0].Deleted {
		t.Errorf("reloaded trashed = %+v", trashed)
	}
}

func TestMissingDeletedFieldNormalizesFalse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.json")

	// older stored data without the tombstone field
	raw := `[{"date": "2024-03-01", "description": "coffee", "amount": "4.50"}]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	active, err := s.Active(context.Background())
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if len(active) != 1 || active[0].Deleted {
		t.Errorf("active = %+v, want the record treated as not deleted", active)
	}
}
