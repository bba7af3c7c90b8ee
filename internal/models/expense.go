package models

// Expense is a single spending record owned by a user and optionally counted
// against one of that user's budgets.
type Expense struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      float64         `gorm:"not null;index" json:"amount"`
	Category    Category        `gorm:"type:varchar(32);not null;index" json:"category"`
	Subcategory NullSubcategory `gorm:"column:subcategory;type:varchar(32)" json:"subcategory"`
	Description string          `json:"description"`
	BudgetID    NullID          `gorm:"column:budget_id;index" json:"budget_id"`
}

// HasBudget reports whether the expense is linked to a budget.
func (e *Expense) HasBudget() bool {
	return e.BudgetID.Valid
}
