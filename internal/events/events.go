// Package events publishes notifications about expense changes to interested
// consumers. Publishing happens after the change is stored and never affects
// the outcome of the operation that triggered it.
package events

import (
	"encoding/json"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/uuid"
)

// Action names the kind of change an ExpenseEvent describes.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ExpenseEvent is the message body published for every stored change.
type ExpenseEvent struct {
	ID         string          `json:"event_id"`
	Action     Action          `json:"action"`
	ExpenseID  uint            `json:"expense_id"`
	UserID     uint            `json:"user_id"`
	Amount     float64         `json:"amount"`
	Category   models.Category `json:"category"`
	BudgetID   models.NullID   `json:"budget_id"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewExpenseEvent snapshots expense for the given action.
func NewExpenseEvent(action Action, expense *models.Expense) ExpenseEvent {
	return ExpenseEvent{
		ID:         uuid.New(),
		Action:     action,
		ExpenseID:  expense.ID,
		UserID:     expense.UserID,
		Amount:     expense.Amount,
		Category:   expense.Category,
		BudgetID:   expense.BudgetID,
		OccurredAt: time.Now().UTC(),
	}
}

// RoutingKey is the topic key consumers bind to, e.g. "expense.created".
func (e ExpenseEvent) RoutingKey() string {
	return "expense." + string(e.Action)
}

// ToJSON encodes the event body.
func (e ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers expense events.
type Publisher interface {
	Publish(event ExpenseEvent) error
	Close() error
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ExpenseEvent) error { return nil }
func (NopPublisher) Close() error               { return nil }
