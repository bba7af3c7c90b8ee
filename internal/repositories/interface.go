// Package repositories is the persistence boundary of the core. Each entity
// has one interface; the gorm implementations live next to it.
package repositories

import (
	"errors"

	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// ErrNotFound is returned by every finder that matches no row.
var ErrNotFound = errors.New("record not found")

// Scope restricts a query to the records owned by one resolved user. It can
// only be built from a *models.User, never from a bare id.
type Scope struct {
	userID uint
}

// ScopeFor returns the scope of a resolved user.
func ScopeFor(user *models.User) Scope {
	return Scope{userID: user.ID}
}

// UserID returns the owning user's id.
func (s Scope) UserID() uint { return s.userID }

// UserRepository persists users.
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	// ExistsByEmail and ExistsByUsername include soft-deleted rows.
	ExistsByEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	FindAll(page pagination.PageRequest) ([]models.User, int64, error)
	Save(user *models.User) error
	Delete(user *models.User) error
}

// BudgetRepository persists budgets.
type BudgetRepository interface {
	Create(budget *models.Budget) error
	FindByID(scope Scope, id uint) (*models.Budget, error)
	FindAll(scope Scope, page pagination.PageRequest) ([]models.Budget, int64, error)
	Save(budget *models.Budget) error
	Delete(budget *models.Budget) error
}

// ExpenseRepository persists expenses. Every finder returns rows ordered by
// id ascending.
type ExpenseRepository interface {
	Create(expense *models.Expense) error
	FindByID(scope Scope, id uint) (*models.Expense, error)
	FindAll(scope Scope) ([]models.Expense, error)
	FindByCategory(scope Scope, category models.Category) ([]models.Expense, error)
	FindByBudget(scope Scope, budgetID uint) ([]models.Expense, error)
	// FindInAmountRange is inclusive on both ends.
	FindInAmountRange(scope Scope, low, high float64) ([]models.Expense, error)
	FindGreaterThan(scope Scope, amount float64) ([]models.Expense, error)
	FindLessThan(scope Scope, amount float64) ([]models.Expense, error)
	Save(expense *models.Expense) error
	UpdateColumn(expense *models.Expense, column string, value interface{}) error
	Delete(expense *models.Expense) error
}
