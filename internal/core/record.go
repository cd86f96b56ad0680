package core

import (
	"errors"
	"time"
)

// ISODate is the storage format for calendar dates. Records carry dates,
// not timestamps.
const ISODate = "2006-01-02"

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// ExpenseRecord is one ledger entry. The (Date, Description, Amount) triple
// is the record's identity for delete/restore; there is no surrogate key.
type ExpenseRecord struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Deleted     bool   `json:"deleted"`
}

// Matches reports whether the record's identifying triple equals the given
// fields. The deleted flag is not part of the identity.
func (r ExpenseRecord) Matches(date, description, amount string) bool {
	return r.Date == date && r.Description == description && r.Amount == amount
}

// ParseISODate parses a stored YYYY-MM-DD date.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatISODate renders a calendar date in storage form, dropping any
// time-of-day component.
func FormatISODate(t time.Time) string {
	return t.Format(ISODate)
}
