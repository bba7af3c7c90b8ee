package events

import (
	"encoding/json"
	"testing"

	"spendwise/internal/models"
)

func TestNewExpenseEvent(t *testing.T) {
	expense := &models.Expense{
		Base:     models.Base{ID: 7},
		UserID:   3,
		Amount:   12.5,
		Category: models.CategoryFood,
		BudgetID: models.SomeID(2),
	}

	event := NewExpenseEvent(ActionUpdated, expense)

	if event.RoutingKey() != "expense.updated" {
		t.Errorf("expected routing key expense.updated, got %s", event.RoutingKey())
	}
	if event.ID == "" {
		t.Error("expected event_id to be set")
	}
	if event.OccurredAt.IsZero() {
		t.Error("expected occurred_at to be set")
	}

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded["expense_id"].(float64) != 7 {
		t.Errorf("expected expense_id 7, got %v", decoded["expense_id"])
	}
	if decoded["category"] != "Food" {
		t.Errorf("expected category Food, got %v", decoded["category"])
	}
	if decoded["budget_id"].(float64) != 2 {
		t.Errorf("expected budget_id 2, got %v", decoded["budget_id"])
	}
}

func TestNewExpenseEventWithoutBudget(t *testing.T) {
	event := NewExpenseEvent(ActionCreated, &models.Expense{Category: models.CategorySavings})

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded["budget_id"] != nil {
		t.Errorf("expected null budget_id, got %v", decoded["budget_id"])
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(ExpenseEvent{Action: ActionDeleted}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
