package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
type CreateExpenseRequest struct {
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Category    string                 `json:"category" binding:"required,expense_category"`
	Subcategory models.NullSubcategory `json:"subcategory" swaggertype:"string"`
	Description string                 `json:"description" binding:"max=255"`
	BudgetID    models.NullID          `json:"budget_id" swaggertype:"integer"`
}

// UpdateExpenseRequest names one field and its new value. The value key is
// required; a null value clears subcategory, description or budget.
type UpdateExpenseRequest struct {
	Field string     `json:"field" binding:"required" example:"amount"`
	Value fieldValue `json:"value" swaggertype:"string" example:"1500"`
}

// CreateExpense handles the creation of a new expense.
// @Summary     Create an expense
// @Description Record an expense, optionally against one of the caller's budgets
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, _ := models.ParseCategory(req.Category)
	expense := &models.Expense{
		Amount:      req.Amount,
		Category:    category,
		Subcategory: req.Subcategory,
		Description: req.Description,
	}

	var created *models.Expense
	if req.BudgetID.Valid {
		created, err = h.expenseService.SaveExpenseWithBudget(actor, req.BudgetID.ID, expense)
	} else {
		created, err = h.expenseService.SaveExpense(actor, expense)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": created})
}

// GetExpenses handles listing all expenses of the caller.
// @Summary     Get expenses
// @Description Get every expense of the authenticated user ordered by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithList(c, func() ([]models.Expense, error) {
		return h.expenseService.GetAllExpenses(actor)
	})
}

// GetExpense handles retrieving a single expense.
// @Summary     Get an expense
// @Description Get an expense of the authenticated user by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(actor, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles changing one field of an expense.
// @Summary     Update an expense field
// @Description Change amount, category, subcategory, description or budget of an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Field and new value"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown field"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense or budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [patch]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if !req.Value.set {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "value is required; send null to clear the field"))
		return
	}

	field, err := services.ParseUpdateField(req.Field)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpenseByID(actor, expenseID, field, req.Value.value)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete an expense
// @Description Delete an expense of the authenticated user
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(actor, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
}

// GetBudgetExpenses handles listing the expenses linked to a budget.
// @Summary     Get expenses of a budget
// @Description Get the caller's expenses recorded against one of their budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/expenses [get]
func (h *ExpenseHandler) GetBudgetExpenses(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithList(c, func() ([]models.Expense, error) {
		return h.expenseService.GetExpensesByBudget(actor, budgetID)
	})
}

// GetExpensesByCategory handles listing expenses in a category.
// @Summary     Get expenses by category
// @Description Get the caller's expenses in a category
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Category name"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Unknown category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/category/{category} [get]
func (h *ExpenseHandler) GetExpensesByCategory(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithList(c, func() ([]models.Expense, error) {
		return h.expenseService.GetExpensesByCategory(actor, c.Param("category"))
	})
}

// GetExpensesInRange handles listing expenses within an amount range.
// @Summary     Get expenses in a price range
// @Description Get the caller's expenses with low <= amount <= high
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       low  query number true "Lower bound (inclusive)"
// @Param       high query number true "Upper bound (inclusive)"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid bounds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/range [get]
func (h *ExpenseHandler) GetExpensesInRange(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	low, err := parseAmountQuery(c, "low")
	if err != nil {
		respondWithError(c, err)
		return
	}
	high, err := parseAmountQuery(c, "high")
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithList(c, func() ([]models.Expense, error) {
		return h.expenseService.GetExpensesInPriceRange(actor, low, high)
	})
}

// GetExpensesAbove handles listing expenses above an amount.
// @Summary     Get expenses above an amount
// @Description Get the caller's expenses with amount strictly greater than the threshold
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       amount query number true "Threshold (exclusive)"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/above [get]
func (h *ExpenseHandler) GetExpensesAbove(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	amount, err := parseAmountQuery(c, "amount")
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithList(c, func() ([]models.Expense, error) {
		return h.expenseService.GetExpensesGreaterThan(actor, amount)
	})
}

// GetExpensesBelow handles listing expenses below an amount.
// @Summary     Get expenses below an amount
// @Description Get the caller's expenses with amount strictly less than the threshold
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       amount query number true "Threshold (exclusive)"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/below [get]
func (h *ExpenseHandler) GetExpensesBelow(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	amount, err := parseAmountQuery(c, "amount")
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithList(c, func() ([]models.Expense, error) {
		return h.expenseService.GetExpensesLessThan(actor, amount)
	})
}

// GetSortedExpenses handles listing expenses in a chosen order.
// @Summary     Get sorted expenses
// @Description Get the caller's expenses sorted by amount, category or subcategory
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       by query string true "Sort key" Enums(amount, category, subcategory)
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid sort key"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/sorted [get]
func (h *ExpenseHandler) GetSortedExpenses(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	key, err := services.ParseSortKey(c.Query("by"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithList(c, func() ([]models.Expense, error) {
		return h.expenseService.SortExpensesBy(actor, key)
	})
}

func (h *ExpenseHandler) respondWithList(c *gin.Context, list func() ([]models.Expense, error)) {
	expenses, err := list()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "count": len(expenses)})
}
