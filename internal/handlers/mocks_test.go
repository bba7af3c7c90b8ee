package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"spendwise/internal/middleware"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
	"spendwise/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	resolveUserFn  func(usernameOrEmail string) (*models.User, error)
	createUserFn   func(username, email, password, name string) (*models.User, error)
	updateNameFn   func(usernameOrEmail, name string) (*models.User, error)
	deleteUserFn   func(usernameOrEmail string) error
	getAllUsersFn  func(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	setRoleFn      func(usernameOrEmail string, role models.Role) (*models.User, error)
	attemptLoginFn func(usernameOrEmail, password string) (*models.User, error)
}

func (m *mockUserService) ResolveUser(usernameOrEmail string) (*models.User, error) {
	if m.resolveUserFn != nil {
		return m.resolveUserFn(usernameOrEmail)
	}
	return &models.User{Username: usernameOrEmail}, nil
}

func (m *mockUserService) CreateUser(username, email, password, name string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(username, email, password, name)
	}
	return &models.User{Username: username, Email: email, Name: name, Role: models.RoleUser}, nil
}

func (m *mockUserService) UpdateName(usernameOrEmail, name string) (*models.User, error) {
	if m.updateNameFn != nil {
		return m.updateNameFn(usernameOrEmail, name)
	}
	return &models.User{Username: usernameOrEmail, Name: name}, nil
}

func (m *mockUserService) DeleteUser(usernameOrEmail string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(usernameOrEmail)
	}
	return nil
}

func (m *mockUserService) GetAllUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	if m.getAllUsersFn != nil {
		return m.getAllUsersFn(page)
	}
	resp := pagination.NewPageResponse([]models.User{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockUserService) SetRole(usernameOrEmail string, role models.Role) (*models.User, error) {
	if m.setRoleFn != nil {
		return m.setRoleFn(usernameOrEmail, role)
	}
	return &models.User{Username: usernameOrEmail, Role: role}, nil
}

func (m *mockUserService) AttemptLogin(usernameOrEmail, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(usernameOrEmail, password)
	}
	return &models.User{Username: usernameOrEmail, Role: models.RoleUser}, nil
}

type mockBudgetService struct {
	resolveBudgetFn func(usernameOrEmail string, budgetID uint) (*models.Budget, error)
	saveBudgetFn    func(usernameOrEmail string, budget *models.Budget) (*models.Budget, error)
	getAllBudgetsFn func(usernameOrEmail string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	updateBudgetFn  func(usernameOrEmail string, budgetID uint, update services.BudgetUpdate) (*models.Budget, error)
	deleteBudgetFn  func(usernameOrEmail string, budgetID uint) error
}

func (m *mockBudgetService) ResolveBudget(usernameOrEmail string, budgetID uint) (*models.Budget, error) {
	if m.resolveBudgetFn != nil {
		return m.resolveBudgetFn(usernameOrEmail, budgetID)
	}
	return &models.Budget{Base: models.Base{ID: budgetID}}, nil
}

func (m *mockBudgetService) SaveBudget(usernameOrEmail string, budget *models.Budget) (*models.Budget, error) {
	if m.saveBudgetFn != nil {
		return m.saveBudgetFn(usernameOrEmail, budget)
	}
	return budget, nil
}

func (m *mockBudgetService) GetAllBudgets(usernameOrEmail string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	if m.getAllBudgetsFn != nil {
		return m.getAllBudgetsFn(usernameOrEmail, page)
	}
	resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockBudgetService) UpdateBudget(usernameOrEmail string, budgetID uint, update services.BudgetUpdate) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(usernameOrEmail, budgetID, update)
	}
	return &models.Budget{Base: models.Base{ID: budgetID}}, nil
}

func (m *mockBudgetService) DeleteBudget(usernameOrEmail string, budgetID uint) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(usernameOrEmail, budgetID)
	}
	return nil
}

type mockExpenseService struct {
	saveExpenseFn           func(usernameOrEmail string, expense *models.Expense) (*models.Expense, error)
	saveExpenseWithBudgetFn func(usernameOrEmail string, budgetID uint, expense *models.Expense) (*models.Expense, error)
	updateExpenseByIDFn     func(usernameOrEmail string, expenseID uint, field services.UpdateField, value services.FieldValue) (*models.Expense, error)
	getExpenseByIDFn        func(usernameOrEmail string, expenseID uint) (*models.Expense, error)
	getExpensesByBudgetFn   func(usernameOrEmail string, budgetID uint) ([]models.Expense, error)
	getAllExpensesFn        func(usernameOrEmail string) ([]models.Expense, error)
	getExpensesByCategoryFn func(usernameOrEmail, categoryName string) ([]models.Expense, error)
	getInPriceRangeFn       func(usernameOrEmail string, low, high float64) ([]models.Expense, error)
	getGreaterThanFn        func(usernameOrEmail string, amount float64) ([]models.Expense, error)
	getLessThanFn           func(usernameOrEmail string, amount float64) ([]models.Expense, error)
	sortExpensesByFn        func(usernameOrEmail string, key services.SortKey) ([]models.Expense, error)
	deleteExpenseFn         func(usernameOrEmail string, expenseID uint) error
}

func (m *mockExpenseService) SaveExpense(usernameOrEmail string, expense *models.Expense) (*models.Expense, error) {
	if m.saveExpenseFn != nil {
		return m.saveExpenseFn(usernameOrEmail, expense)
	}
	return expense, nil
}

func (m *mockExpenseService) SaveExpenseWithBudget(usernameOrEmail string, budgetID uint, expense *models.Expense) (*models.Expense, error) {
	if m.saveExpenseWithBudgetFn != nil {
		return m.saveExpenseWithBudgetFn(usernameOrEmail, budgetID, expense)
	}
	expense.BudgetID = models.SomeID(budgetID)
	return expense, nil
}

func (m *mockExpenseService) UpdateExpenseByID(usernameOrEmail string, expenseID uint, field services.UpdateField, value services.FieldValue) (*models.Expense, error) {
	if m.updateExpenseByIDFn != nil {
		return m.updateExpenseByIDFn(usernameOrEmail, expenseID, field, value)
	}
	return &models.Expense{Base: models.Base{ID: expenseID}}, nil
}

func (m *mockExpenseService) GetExpenseByID(usernameOrEmail string, expenseID uint) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(usernameOrEmail, expenseID)
	}
	return &models.Expense{Base: models.Base{ID: expenseID}}, nil
}

func (m *mockExpenseService) GetExpensesByBudget(usernameOrEmail string, budgetID uint) ([]models.Expense, error) {
	if m.getExpensesByBudgetFn != nil {
		return m.getExpensesByBudgetFn(usernameOrEmail, budgetID)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) GetAllExpenses(usernameOrEmail string) ([]models.Expense, error) {
	if m.getAllExpensesFn != nil {
		return m.getAllExpensesFn(usernameOrEmail)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) GetExpensesByCategory(usernameOrEmail, categoryName string) ([]models.Expense, error) {
	if m.getExpensesByCategoryFn != nil {
		return m.getExpensesByCategoryFn(usernameOrEmail, categoryName)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) GetExpensesInPriceRange(usernameOrEmail string, low, high float64) ([]models.Expense, error) {
	if m.getInPriceRangeFn != nil {
		return m.getInPriceRangeFn(usernameOrEmail, low, high)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) GetExpensesGreaterThan(usernameOrEmail string, amount float64) ([]models.Expense, error) {
	if m.getGreaterThanFn != nil {
		return m.getGreaterThanFn(usernameOrEmail, amount)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) GetExpensesLessThan(usernameOrEmail string, amount float64) ([]models.Expense, error) {
	if m.getLessThanFn != nil {
		return m.getLessThanFn(usernameOrEmail, amount)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) SortExpensesBy(usernameOrEmail string, key services.SortKey) ([]models.Expense, error) {
	if m.sortExpensesByFn != nil {
		return m.sortExpensesByFn(usernameOrEmail, key)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(usernameOrEmail string, expenseID uint) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(usernameOrEmail, expenseID)
	}
	return nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectActor(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UsernameKey, username)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
