package backend

import (
	"context"
	"fmt"
	"log/slog"

	"spendlog/internal/ledger/file"
	"spendlog/internal/ledger/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new store factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateStore implements Factory.CreateStore
func (f *DefaultFactory) CreateStore(_ context.Context, config Config) (*StoreResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case FileBackend:
		return f.createFileStore(config)
	case SQLiteBackend:
		return f.createSQLiteStore(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createFileStore(config Config) (*StoreResult, error) {
	store, err := file.New(config.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file ledger: %w", err)
	}

	f.logger.Info("Initialized file ledger backend", "path", config.LedgerPath)

	return &StoreResult{
		Store:   store,
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createSQLiteStore(config Config) (*StoreResult, error) {
	store, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite ledger: %w", err)
	}

	f.logger.Info("Initialized SQLite ledger backend", "db_path", config.SQLiteDBPath)

	return &StoreResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}
