package services

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"spendwise/internal/events"
	"spendwise/internal/models"
	"spendwise/internal/repositories"
	"spendwise/internal/testutil"

	"gorm.io/gorm"
)

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	events []events.ExpenseEvent
	err    error
}

func (p *recordingPublisher) Publish(e events.ExpenseEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// countingExpenseRepository counts the writes that reach the store.
type countingExpenseRepository struct {
	repositories.ExpenseRepository
	writes int
}

func (r *countingExpenseRepository) Create(e *models.Expense) error {
	r.writes++
	return r.ExpenseRepository.Create(e)
}

func (r *countingExpenseRepository) Save(e *models.Expense) error {
	r.writes++
	return r.ExpenseRepository.Save(e)
}

func (r *countingExpenseRepository) UpdateColumn(e *models.Expense, column string, value interface{}) error {
	r.writes++
	return r.ExpenseRepository.UpdateColumn(e, column, value)
}

func (r *countingExpenseRepository) Delete(e *models.Expense) error {
	r.writes++
	return r.ExpenseRepository.Delete(e)
}

func newExpenseService(db *gorm.DB, pub events.Publisher) ExpenseServicer {
	return newExpenseServiceWithRepo(db, repositories.NewExpenseRepository(db), pub)
}

func newExpenseServiceWithRepo(db *gorm.DB, repo repositories.ExpenseRepository, pub events.Publisher) ExpenseServicer {
	users := newUserService(db)
	budgets := NewBudgetService(repositories.NewBudgetRepository(db), users)
	return NewExpenseService(repo, users, budgets, pub)
}

// seedAmounts creates one Food expense per amount, in order.
func seedAmounts(t *testing.T, db *gorm.DB, userID uint, amounts ...float64) []*models.Expense {
	t.Helper()
	out := make([]*models.Expense, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, testutil.CreateTestExpense(t, db, userID, a, models.CategoryFood))
	}
	return out
}

func amountsOf(expenses []models.Expense) []float64 {
	out := make([]float64, len(expenses))
	for i, e := range expenses {
		out[i] = e.Amount
	}
	return out
}

func assertAmounts(t *testing.T, got []models.Expense, want ...float64) {
	t.Helper()
	amounts := amountsOf(got)
	if len(amounts) != len(want) {
		t.Fatalf("expected amounts %v, got %v", want, amounts)
	}
	for i := range want {
		if amounts[i] != want[i] {
			t.Fatalf("expected amounts %v, got %v", want, amounts)
		}
	}
}

func TestSaveExpense(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pub := &recordingPublisher{}
		svc := newExpenseService(db, pub)
		user := testutil.CreateTestUser(t, db)

		saved, err := svc.SaveExpense(user.Username, &models.Expense{
			Amount:      42.5,
			Category:    models.CategoryFood,
			Subcategory: models.SomeSubcategory(models.SubcategoryDining),
			Description: "Dinner",
		})
		testutil.AssertNoError(t, err)

		got, err := svc.GetExpenseByID(user.Username, saved.ID)
		testutil.AssertNoError(t, err)

		if got.ID != saved.ID || got.UserID != user.ID || got.Amount != 42.5 ||
			got.Category != models.CategoryFood || got.Subcategory != saved.Subcategory ||
			got.Description != "Dinner" || got.HasBudget() {
			t.Errorf("round trip mismatch: saved %+v, got %+v", saved, got)
		}

		if len(pub.events) != 1 || pub.events[0].Action != events.ActionCreated {
			t.Errorf("expected one created event, got %+v", pub.events)
		}
	})

	t.Run("ignores_budget_on_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		owner := testutil.CreateTestUser(t, db)
		user := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestBudget(t, db, owner.ID)

		saved, err := svc.SaveExpense(user.Username, &models.Expense{
			Amount:   5,
			Category: models.CategoryFood,
			BudgetID: models.SomeID(foreign.ID),
		})
		testutil.AssertNoError(t, err)
		if saved.HasBudget() {
			t.Errorf("expected no budget link, got %d", saved.BudgetID.ID)
		}
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		for _, amount := range []float64{0, -3, math.NaN(), math.Inf(1)} {
			_, err := svc.SaveExpense(user.Username, &models.Expense{Amount: amount, Category: models.CategoryFood})
			testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		}
	})

	t.Run("invalid_subcategory", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveExpense(user.Username, &models.Expense{
			Amount:      5,
			Category:    models.CategoryFood,
			Subcategory: models.SomeSubcategory("Caviar"),
		})
		testutil.AssertAppError(t, err, "INVALID_SUBCATEGORY")
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)

		_, err := svc.SaveExpense("ghost", &models.Expense{Amount: 5, Category: models.CategoryFood})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("publish_failure_keeps_write", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, &recordingPublisher{err: errors.New("broker down")})
		user := testutil.CreateTestUser(t, db)

		saved, err := svc.SaveExpense(user.Username, &models.Expense{Amount: 5, Category: models.CategoryFood})
		testutil.AssertNoError(t, err)

		_, err = svc.GetExpenseByID(user.Username, saved.ID)
		testutil.AssertNoError(t, err)
	})
}

func TestSaveExpenseWithBudget(t *testing.T) {
	t.Run("own_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID)

		saved, err := svc.SaveExpenseWithBudget(user.Email, budget.ID, &models.Expense{Amount: 30, Category: models.CategoryFood})
		testutil.AssertNoError(t, err)
		if !saved.HasBudget() || saved.BudgetID.ID != budget.ID {
			t.Errorf("expected budget %d, got %+v", budget.ID, saved.BudgetID)
		}
	})

	t.Run("foreign_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		owner := testutil.CreateTestUser(t, db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, owner.ID)

		_, err := svc.SaveExpenseWithBudget(user.Username, budget.ID, &models.Expense{Amount: 30, Category: models.CategoryFood})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

		var count int64
		db.Model(&models.Expense{}).Count(&count)
		if count != 0 {
			t.Errorf("expected nothing stored, found %d expenses", count)
		}
	})
}

func TestUpdateExpenseByID(t *testing.T) {
	t.Run("amount_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pub := &recordingPublisher{}
		svc := newExpenseService(db, pub)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID)
		created := testutil.CreateTestExpenseWith(t, db, &models.Expense{
			UserID:      user.ID,
			Amount:      20,
			Category:    models.CategoryFood,
			Subcategory: models.SomeSubcategory(models.SubcategoryGroceries),
			Description: "Weekly shop",
			BudgetID:    models.SomeID(budget.ID),
		})

		updated, err := svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldAmount, NewFieldValue("1500"))
		testutil.AssertNoError(t, err)
		if updated.Amount != 1500.0 {
			t.Errorf("expected amount 1500, got %f", updated.Amount)
		}

		stored, err := svc.GetExpenseByID(user.Username, created.ID)
		testutil.AssertNoError(t, err)
		if stored.Amount != 1500.0 {
			t.Errorf("expected persisted amount 1500, got %f", stored.Amount)
		}
		if stored.Category != created.Category || stored.Subcategory != created.Subcategory ||
			stored.Description != created.Description || stored.BudgetID != created.BudgetID {
			t.Errorf("expected other fields unchanged, got %+v", stored)
		}

		if len(pub.events) != 1 || pub.events[0].Action != events.ActionUpdated {
			t.Errorf("expected one updated event, got %+v", pub.events)
		}
	})

	t.Run("category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 9, models.CategoryFood)

		updated, err := svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldCategory, NewFieldValue("transport"))
		testutil.AssertNoError(t, err)
		if updated.Category != models.CategoryTransport {
			t.Errorf("expected category Transport, got %s", updated.Category)
		}
	})

	t.Run("description_assigned_verbatim", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 9, models.CategoryFood)

		_, err := svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldDescription, NewFieldValue("  padded note "))
		testutil.AssertNoError(t, err)
		stored, _ := svc.GetExpenseByID(user.Username, created.ID)
		if stored.Description != "  padded note " {
			t.Errorf("expected description kept verbatim, got %q", stored.Description)
		}

		updated, err := svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldAmount, NewFieldValue(" 42 "))
		testutil.AssertNoError(t, err)
		if updated.Amount != 42 {
			t.Errorf("expected padded amount to parse as 42, got %f", updated.Amount)
		}
	})

	t.Run("subcategory_set_and_clear", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 9, models.CategoryFood)

		_, err := svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldSubcategory, NewFieldValue("Dining"))
		testutil.AssertNoError(t, err)
		stored, _ := svc.GetExpenseByID(user.Username, created.ID)
		if stored.Subcategory != models.SomeSubcategory(models.SubcategoryDining) {
			t.Errorf("expected subcategory Dining, got %+v", stored.Subcategory)
		}

		_, err = svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldSubcategory, AbsentValue())
		testutil.AssertNoError(t, err)
		stored, _ = svc.GetExpenseByID(user.Username, created.ID)
		if stored.Subcategory.Valid {
			t.Errorf("expected subcategory cleared, got %s", stored.Subcategory.Subcategory)
		}
	})

	t.Run("description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 9, models.CategoryFood)

		updated, err := svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldDescription, NewFieldValue("Lunch"))
		testutil.AssertNoError(t, err)
		if updated.Description != "Lunch" {
			t.Errorf("expected description Lunch, got %s", updated.Description)
		}
	})

	t.Run("budget_attach_and_detach", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID)
		created := testutil.CreateTestExpense(t, db, user.ID, 9, models.CategoryFood)

		updated, err := svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldBudget, NewFieldValue(uintString(budget.ID)))
		testutil.AssertNoError(t, err)
		if updated.BudgetID != models.SomeID(budget.ID) {
			t.Errorf("expected budget %d, got %+v", budget.ID, updated.BudgetID)
		}

		_, err = svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldBudget, AbsentValue())
		testutil.AssertNoError(t, err)
		stored, _ := svc.GetExpenseByID(user.Username, created.ID)
		if stored.HasBudget() {
			t.Errorf("expected budget detached, got %d", stored.BudgetID.ID)
		}
	})

	t.Run("foreign_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		owner := testutil.CreateTestUser(t, db)
		user := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestBudget(t, db, owner.ID)
		created := testutil.CreateTestExpense(t, db, user.ID, 9, models.CategoryFood)

		_, err := svc.UpdateExpenseByID(user.Username, created.ID, UpdateFieldBudget, NewFieldValue(uintString(foreign.ID)))
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

		stored, _ := svc.GetExpenseByID(user.Username, created.ID)
		if stored.HasBudget() {
			t.Error("foreign budget was attached")
		}
	})

	t.Run("validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 9, models.CategoryFood)

		tests := []struct {
			name  string
			field UpdateField
			value FieldValue
			code  string
		}{
			{"amount_not_numeric", UpdateFieldAmount, NewFieldValue("lots"), "INVALID_AMOUNT"},
			{"amount_negative", UpdateFieldAmount, NewFieldValue("-5"), "INVALID_AMOUNT"},
			{"amount_cleared", UpdateFieldAmount, AbsentValue(), "INVALID_AMOUNT"},
			{"category_unknown", UpdateFieldCategory, NewFieldValue("Yachts"), "INVALID_CATEGORY"},
			{"category_cleared", UpdateFieldCategory, AbsentValue(), "INVALID_CATEGORY"},
			{"subcategory_unknown", UpdateFieldSubcategory, NewFieldValue("Caviar"), "INVALID_SUBCATEGORY"},
			{"budget_not_numeric", UpdateFieldBudget, NewFieldValue("abc"), "INVALID_INPUT"},
			{"unknown_field", UpdateField(99), NewFieldValue("x"), "UNKNOWN_UPDATE_FIELD"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.UpdateExpenseByID(user.Username, created.ID, tt.field, tt.value)
				testutil.AssertAppError(t, err, tt.code)
			})
		}

		stored, _ := svc.GetExpenseByID(user.Username, created.ID)
		if stored.Amount != 9 || stored.Category != models.CategoryFood {
			t.Errorf("expected expense unchanged after failed updates, got %+v", stored)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateExpenseByID(user.Username, 404, UpdateFieldAmount, NewFieldValue("1"))
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestExpenseOwnershipIsolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newExpenseService(db, nil)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	budget := testutil.CreateTestBudget(t, db, owner.ID)
	expense := testutil.CreateTestExpenseWith(t, db, &models.Expense{
		UserID:   owner.ID,
		Amount:   25,
		Category: models.CategoryFood,
		BudgetID: models.SomeID(budget.ID),
	})

	_, err := svc.GetExpenseByID(other.Username, expense.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

	_, err = svc.GetExpensesByBudget(other.Username, budget.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

	lists := map[string]func() ([]models.Expense, error){
		"all":          func() ([]models.Expense, error) { return svc.GetAllExpenses(other.Username) },
		"category":     func() ([]models.Expense, error) { return svc.GetExpensesByCategory(other.Username, "food") },
		"range":        func() ([]models.Expense, error) { return svc.GetExpensesInPriceRange(other.Username, 0, 1000) },
		"greater_than": func() ([]models.Expense, error) { return svc.GetExpensesGreaterThan(other.Username, 0) },
		"less_than":    func() ([]models.Expense, error) { return svc.GetExpensesLessThan(other.Username, 1000) },
		"sorted":       func() ([]models.Expense, error) { return svc.SortExpensesBy(other.Username, SortByAmount) },
	}
	for name, list := range lists {
		t.Run(name, func(t *testing.T) {
			got, err := list()
			testutil.AssertNoError(t, err)
			if len(got) != 0 {
				t.Errorf("expected no expenses for another user, got %d", len(got))
			}
		})
	}

	_, err = svc.UpdateExpenseByID(other.Username, expense.ID, UpdateFieldAmount, NewFieldValue("1"))
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

	err = svc.DeleteExpense(other.Username, expense.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
}

func TestGetExpensesByBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newExpenseService(db, nil)
	user := testutil.CreateTestUser(t, db)
	budget := testutil.CreateTestBudget(t, db, user.ID)
	linked := testutil.CreateTestExpenseWith(t, db, &models.Expense{
		UserID:   user.ID,
		Amount:   15,
		Category: models.CategoryFood,
		BudgetID: models.SomeID(budget.ID),
	})
	testutil.CreateTestExpense(t, db, user.ID, 50, models.CategoryFood)

	got, err := svc.GetExpensesByBudget(user.Username, budget.ID)
	testutil.AssertNoError(t, err)
	if len(got) != 1 || got[0].ID != linked.ID {
		t.Errorf("expected only expense %d, got %+v", linked.ID, got)
	}
}

func TestGetExpensesByCategory(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, user.ID, 10, models.CategoryFood)
		testutil.CreateTestExpense(t, db, user.ID, 20, models.CategoryHousing)
		testutil.CreateTestExpense(t, db, user.ID, 30, models.CategoryFood)

		got, err := svc.GetExpensesByCategory(user.Username, "FOOD")
		testutil.AssertNoError(t, err)
		assertAmounts(t, got, 10, 30)
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetExpensesByCategory(user.Username, "Yachts")
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})
}

func TestAmountFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newExpenseService(db, nil)
	user := testutil.CreateTestUser(t, db)
	seedAmounts(t, db, user.ID, 100, 10, 1.49)

	t.Run("greater_than", func(t *testing.T) {
		got, err := svc.GetExpensesGreaterThan(user.Username, 20)
		testutil.AssertNoError(t, err)
		assertAmounts(t, got, 100)
	})

	t.Run("greater_than_is_strict", func(t *testing.T) {
		got, err := svc.GetExpensesGreaterThan(user.Username, 100)
		testutil.AssertNoError(t, err)
		assertAmounts(t, got)
	})

	t.Run("less_than", func(t *testing.T) {
		got, err := svc.GetExpensesLessThan(user.Username, 10)
		testutil.AssertNoError(t, err)
		assertAmounts(t, got, 1.49)
	})

	t.Run("price_range", func(t *testing.T) {
		got, err := svc.GetExpensesInPriceRange(user.Username, 1, 50)
		testutil.AssertNoError(t, err)
		assertAmounts(t, got, 10, 1.49)
	})

	t.Run("price_range_is_inclusive", func(t *testing.T) {
		got, err := svc.GetExpensesInPriceRange(user.Username, 10, 100)
		testutil.AssertNoError(t, err)
		assertAmounts(t, got, 100, 10)
	})

	t.Run("price_range_reversed", func(t *testing.T) {
		_, err := svc.GetExpensesInPriceRange(user.Username, 50, 1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSortExpensesBy(t *testing.T) {
	t.Run("amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		seedAmounts(t, db, user.ID, 100, 10, 1.49)

		got, err := svc.SortExpensesBy(user.Username, SortByAmount)
		testutil.AssertNoError(t, err)
		assertAmounts(t, got, 1.49, 10, 100)
	})

	t.Run("category_by_declaration_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, user.ID, 1, models.CategoryMiscellaneous)
		testutil.CreateTestExpense(t, db, user.ID, 2, models.CategoryFood)
		testutil.CreateTestExpense(t, db, user.ID, 3, models.CategoryHousing)
		testutil.CreateTestExpense(t, db, user.ID, 4, models.CategoryFood)

		got, err := svc.SortExpensesBy(user.Username, SortByCategory)
		testutil.AssertNoError(t, err)
		// Food ties keep id order.
		assertAmounts(t, got, 3, 2, 4, 1)
	})

	t.Run("subcategory_absent_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		for i, sub := range []models.NullSubcategory{
			models.SomeSubcategory(models.SubcategoryLuxury),
			models.NoSubcategory(),
			models.SomeSubcategory(models.SubcategoryBasic),
		} {
			testutil.CreateTestExpenseWith(t, db, &models.Expense{
				UserID:      user.ID,
				Amount:      float64(i + 1),
				Category:    models.CategoryPersonal,
				Subcategory: sub,
			})
		}

		got, err := svc.SortExpensesBy(user.Username, SortBySubcategory)
		testutil.AssertNoError(t, err)
		assertAmounts(t, got, 2, 3, 1)
	})

	t.Run("invalid_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SortExpensesBy(user.Username, SortKey(0))
		testutil.AssertAppError(t, err, "INVALID_SORT_KEY")
	})
}

func TestDeleteExpense(t *testing.T) {
	t.Run("removes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pub := &recordingPublisher{}
		svc := newExpenseService(db, pub)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 7, models.CategoryFood)

		testutil.AssertNoError(t, svc.DeleteExpense(user.Username, created.ID))

		_, err := svc.GetExpenseByID(user.Username, created.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

		if len(pub.events) != 1 || pub.events[0].Action != events.ActionDeleted || pub.events[0].ExpenseID != created.ID {
			t.Errorf("expected one deleted event for %d, got %+v", created.ID, pub.events)
		}
	})

	t.Run("missing_id_writes_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		repo := &countingExpenseRepository{ExpenseRepository: repositories.NewExpenseRepository(db)}
		pub := &recordingPublisher{}
		svc := newExpenseServiceWithRepo(db, repo, pub)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteExpense(user.Username, 12345)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

		if repo.writes != 0 {
			t.Errorf("expected no writes, got %d", repo.writes)
		}
		if len(pub.events) != 0 {
			t.Errorf("expected no events, got %d", len(pub.events))
		}
	})
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
