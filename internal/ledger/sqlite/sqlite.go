// Package sqlite implements the ledger store on SQLite. Insertion order is
// carried by the autoincrement id; first-match delete/restore translates
// to updating the minimum matching id. The tombstone contract is identical
// to the file backend's.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"spendlog/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Append(ctx context.Context, rec core.ExpenseRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (date, description, amount, deleted) VALUES (?, ?, ?, 0)`,
		rec.Date, rec.Description, rec.Amount)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (s *Store) MarkDeleted(ctx context.Context, date, description, amount string) error {
	return s.setTombstone(ctx, date, description, amount, 1)
}

func (s *Store) Restore(ctx context.Context, date, description, amount string) error {
	return s.setTombstone(ctx, date, description, amount, 0)
}

func (s *Store) setTombstone(ctx context.Context, date, description, amount string, deleted int) error {
	// first match in insertion order, regardless of current flag; zero
	// rows affected is the documented silent no-op
	_, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET deleted = ?
		 WHERE id = (SELECT MIN(id) FROM expenses WHERE date = ? AND description = ? AND amount = ?)`,
		deleted, date, description, amount)
	if err != nil {
		return fmt.Errorf("set tombstone: %w", err)
	}
	return nil
}

func (s *Store) Active(ctx context.Context) ([]core.ExpenseRecord, error) {
	return s.list(ctx, 0)
}

func (s *Store) Trashed(ctx context.Context) ([]core.ExpenseRecord, error) {
	return s.list(ctx, 1)
}

func (s *Store) list(ctx context.Context, deleted int) ([]core.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, description, amount, deleted FROM expenses WHERE deleted = ? ORDER BY id`,
		deleted)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var rec core.ExpenseRecord
		var del int
		if err := rows.Scan(&rec.Date, &rec.Description, &rec.Amount, &del); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		rec.Deleted = del != 0
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}
