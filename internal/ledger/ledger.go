// Package ledger defines the durable expense store and its time-window
// query layer.
//
// A store is an ordered sequence of records; insertion order is the only
// order. Mutations persist before returning and reads re-load from durable
// storage on every call, so external mutations between calls are always
// observed. Delete and restore identify records by their value triple:
// the first match wins and a miss is a silent no-op.
package ledger

import (
	"context"
	"time"

	"spendlog/internal/core"
)

// Store is the port implemented by the file and sqlite backends.
type Store interface {
	// Append adds the record with Deleted forced false and flushes it to
	// durable storage before returning.
	Append(ctx context.Context, rec core.ExpenseRecord) error

	// MarkDeleted sets the tombstone on the first record matching the
	// triple. No match is not an error.
	MarkDeleted(ctx context.Context, date, description, amount string) error

	// Restore clears the tombstone on the first record matching the
	// triple. No match is not an error.
	Restore(ctx context.Context, date, description, amount string) error

	// Active returns the non-deleted records in store order.
	Active(ctx context.Context) ([]core.ExpenseRecord, error)

	// Trashed returns the tombstoned records in store order.
	Trashed(ctx context.Context) ([]core.ExpenseRecord, error)
}

// Ledger wraps a store with calendar-window queries. All windows filter
// Active, resolving stored dates to calendar values before comparing; a
// record whose stored date does not parse is skipped rather than compared
// as a string.
type Ledger struct {
	Store
	now func() time.Time
}

// New wraps a store. A nil clock means time.Now; tests pin it.
func New(store Store, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{Store: store, now: now}
}

// Now returns the ledger's current anchor date.
func (l *Ledger) Now() time.Time { return l.now() }

// OnDate returns active records dated exactly d.
func (l *Ledger) OnDate(ctx context.Context, d time.Time) ([]core.ExpenseRecord, error) {
	y, m, day := d.Date()
	return l.filterActive(ctx, func(t time.Time) bool {
		ry, rm, rd := t.Date()
		return ry == y && rm == m && rd == day
	})
}

// InISOWeek returns active records whose ISO-8601 week number equals week.
// Only the week number takes part in the comparison.
func (l *Ledger) InISOWeek(ctx context.Context, week int) ([]core.ExpenseRecord, error) {
	return l.filterActive(ctx, func(t time.Time) bool {
		_, w := t.ISOWeek()
		return w == week
	})
}

// InMonth returns active records falling in the given month of any year.
func (l *Ledger) InMonth(ctx context.Context, month time.Month) ([]core.ExpenseRecord, error) {
	return l.filterActive(ctx, func(t time.Time) bool {
		return t.Month() == month
	})
}

// InYear returns active records falling in the given year.
func (l *Ledger) InYear(ctx context.Context, year int) ([]core.ExpenseRecord, error) {
	return l.filterActive(ctx, func(t time.Time) bool {
		return t.Year() == year
	})
}

// InRange returns active records dated within [start, end], inclusive on
// both bounds.
func (l *Ledger) InRange(ctx context.Context, start, end time.Time) ([]core.ExpenseRecord, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	return l.filterActive(ctx, func(t time.Time) bool {
		t = truncateDay(t)
		return !t.Before(start) && !t.After(end)
	})
}

func (l *Ledger) filterActive(ctx context.Context, keep func(time.Time) bool) ([]core.ExpenseRecord, error) {
	recs, err := l.Active(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.ExpenseRecord
	for _, rec := range recs {
		t, err := core.ParseISODate(rec.Date)
		if err != nil {
			continue
		}
		if keep(t) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Total sums the amounts of a result set, rendered with two fractional
// digits.
func Total(recs []core.ExpenseRecord) string {
	amounts := make([]string, len(recs))
	for i, r := range recs {
		amounts[i] = r.Amount
	}
	return core.SumAmounts(amounts)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
