package services

import (
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// UserServicer defines the contract for user-related business logic. It is
// the directory every other service uses to find out who is acting.
type UserServicer interface {
	ResolveUser(usernameOrEmail string) (*models.User, error)
	CreateUser(username, email, password, name string) (*models.User, error)
	UpdateName(usernameOrEmail, name string) (*models.User, error)
	DeleteUser(usernameOrEmail string) error
	GetAllUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	SetRole(usernameOrEmail string, role models.Role) (*models.User, error)
	AttemptLogin(usernameOrEmail, password string) (*models.User, error)
}

// BudgetUpdate holds the optional fields of a budget update. A nil field is
// left unchanged; a non-nil Subcategory holding an absent value clears it.
type BudgetUpdate struct {
	Amount      *float64
	Category    *models.Category
	Subcategory *models.NullSubcategory
	Description *string
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	ResolveBudget(usernameOrEmail string, budgetID uint) (*models.Budget, error)
	SaveBudget(usernameOrEmail string, budget *models.Budget) (*models.Budget, error)
	GetAllBudgets(usernameOrEmail string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	UpdateBudget(usernameOrEmail string, budgetID uint, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(usernameOrEmail string, budgetID uint) error
}

// ExpenseServicer defines the contract for expense-related business logic.
// Every operation is scoped to the user named by usernameOrEmail.
type ExpenseServicer interface {
	SaveExpense(usernameOrEmail string, expense *models.Expense) (*models.Expense, error)
	SaveExpenseWithBudget(usernameOrEmail string, budgetID uint, expense *models.Expense) (*models.Expense, error)
	UpdateExpenseByID(usernameOrEmail string, expenseID uint, field UpdateField, value FieldValue) (*models.Expense, error)
	GetExpenseByID(usernameOrEmail string, expenseID uint) (*models.Expense, error)
	GetExpensesByBudget(usernameOrEmail string, budgetID uint) ([]models.Expense, error)
	GetAllExpenses(usernameOrEmail string) ([]models.Expense, error)
	GetExpensesByCategory(usernameOrEmail, categoryName string) ([]models.Expense, error)
	GetExpensesInPriceRange(usernameOrEmail string, low, high float64) ([]models.Expense, error)
	GetExpensesGreaterThan(usernameOrEmail string, amount float64) ([]models.Expense, error)
	GetExpensesLessThan(usernameOrEmail string, amount float64) ([]models.Expense, error)
	SortExpensesBy(usernameOrEmail string, key SortKey) ([]models.Expense, error)
	DeleteExpense(usernameOrEmail string, expenseID uint) error
}
