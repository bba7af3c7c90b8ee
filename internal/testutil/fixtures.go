package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"spendwise/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and a unique
// username and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWith(t, db, fmt.Sprintf("user%d", n), fmt.Sprintf("user%d@test.com", n))
}

// CreateTestUserWith creates a user with the given username and email.
func CreateTestUserWith(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Name:     "Test User",
		Role:     models.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a Food budget of 500 for the user.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:      userID,
		Amount:      500,
		Category:    models.CategoryFood,
		Subcategory: models.SomeSubcategory(models.SubcategoryGroceries),
		Description: "Monthly groceries",
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestExpense creates an expense for the user with the given amount
// and category and no subcategory or budget.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount float64, category models.Category) *models.Expense {
	t.Helper()
	return CreateTestExpenseWith(t, db, &models.Expense{
		UserID:   userID,
		Amount:   amount,
		Category: category,
	})
}

// CreateTestExpenseWith stores expense as given.
func CreateTestExpenseWith(t *testing.T, db *gorm.DB, expense *models.Expense) *models.Expense {
	t.Helper()

	if expense.Description == "" {
		expense.Description = fmt.Sprintf("expense %d", nextID())
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
