package amqp

import (
	"encoding/json"
	"time"
)

// Actions carried by expense events.
const (
	ActionRecorded = "recorded"
	ActionDeleted  = "deleted"
	ActionRestored = "restored"
)

// ExpenseEventMessage notifies downstream consumers (export adapters) that
// a ledger record changed. It carries the full identifying triple; the
// ledger file stays the single source of truth.
type ExpenseEventMessage struct {
	Action      string    `json:"action"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewExpenseEventMessage(action, date, description, amount string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Action:      action,
		Date:        date,
		Description: description,
		Amount:      amount,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
