// Package services provides business logic and orchestration services.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"spendlog/internal/amqp"
	"spendlog/internal/core"
	"spendlog/internal/interpret"
	"spendlog/internal/ledger"
)

// EventPublisher publishes expense events for downstream consumers.
// *amqp.Client satisfies it; tests substitute a stub.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error
	Close() error
}

// ExpenseService orchestrates message interpretation, ledger writes and
// event publication.
type ExpenseService struct {
	ledger    *ledger.Ledger
	interp    *interpret.Interpreter
	publisher EventPublisher
}

func NewExpenseService(lg *ledger.Ledger, interp *interpret.Interpreter, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		ledger:    lg,
		interp:    interp,
		publisher: publisher,
	}
}

// Ledger exposes the underlying ledger for read-side queries.
func (s *ExpenseService) Ledger() *ledger.Ledger {
	return s.ledger
}

// Record interprets a free-form message and appends the resulting expense.
// Interpretation is total, so the only failure mode is the ledger write.
func (s *ExpenseService) Record(ctx context.Context, message string) (core.ExpenseRecord, error) {
	record := s.interp.Interpret(ctx, message)

	if err := s.ledger.Append(ctx, record); err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("append expense: %w", err)
	}

	s.publishEvent(ctx, amqp.ActionRecorded, record.Date, record.Description, record.Amount)

	return record, nil
}

// Delete tombstones the first active record matching the triple.
func (s *ExpenseService) Delete(ctx context.Context, date, description, amount string) error {
	if err := s.ledger.MarkDeleted(ctx, date, description, amount); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publishEvent(ctx, amqp.ActionDeleted, date, description, amount)

	return nil
}

// Restore clears the tombstone on the first deleted record matching the triple.
func (s *ExpenseService) Restore(ctx context.Context, date, description, amount string) error {
	if err := s.ledger.Restore(ctx, date, description, amount); err != nil {
		return fmt.Errorf("restore expense: %w", err)
	}

	s.publishEvent(ctx, amqp.ActionRestored, date, description, amount)

	return nil
}

// publishEvent is best effort. The ledger is the source of truth, so a
// failed publish is logged but never surfaced to the caller.
func (s *ExpenseService) publishEvent(ctx context.Context, action, date, description, amount string) {
	if s.publisher == nil {
		return
	}

	msg := amqp.NewExpenseEventMessage(action, date, description, amount)
	if err := s.publisher.PublishExpenseEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"action", action, "date", date, "error", err)
	}
}

// Close closes the event publisher if one is configured.
func (s *ExpenseService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}
