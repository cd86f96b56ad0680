// Package file implements the ledger store as a single flat JSON file: an
// array of records rewritten whole on every mutation. The rewrite goes
// through a temp file and a rename so a crash mid-write cannot corrupt the
// ledger. A missing file is initialized empty; a record stored without the
// deleted field loads as not deleted.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"spendlog/internal/core"
)

type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

func (s *Store) Append(_ context.Context, rec core.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load()
	if err != nil {
		return err
	}
	rec.Deleted = false
	recs = append(recs, rec)
	return s.save(recs)
}

func (s *Store) MarkDeleted(_ context.Context, date, description, amount string) error {
	return s.setTombstone(date, description, amount, true)
}

func (s *Store) Restore(_ context.Context, date, description, amount string) error {
	return s.setTombstone(date, description, amount, false)
}

func (s *Store) setTombstone(date, description, amount string, deleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load()
	if err != nil {
		return err
	}
	for i := range recs {
		if recs[i].Matches(date, description, amount) {
			if recs[i].Deleted == deleted {
				return nil
			}
			recs[i].Deleted = deleted
			return s.save(recs)
		}
	}
	// no match: ambiguity-tolerant no-op
	return nil
}

func (s *Store) Active(_ context.Context) ([]core.ExpenseRecord, error) {
	return s.filtered(false)
}

func (s *Store) Trashed(_ context.Context) ([]core.ExpenseRecord, error) {
	return s.filtered(true)
}

func (s *Store) filtered(deleted bool) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []core.ExpenseRecord
	for _, rec := range recs {
		if rec.Deleted == deleted {
			out = append(out, rec)
		}
	}
	return out, nil
}

// load reads the whole file on every call so mutations made by another
// process are observed. The zero value of the deleted field doubles as
// the normalization for records stored without it.
func (s *Store) load() ([]core.ExpenseRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if err := s.save(nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var recs []core.ExpenseRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode ledger file: %w", err)
	}
	return recs, nil
}

func (s *Store) save(recs []core.ExpenseRecord) error {
	if recs == nil {
		recs = []core.ExpenseRecord{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}
