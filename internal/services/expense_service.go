package services

import (
	"cmp"
	"errors"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/events"
	"spendwise/internal/logger"
	"spendwise/internal/models"
	"spendwise/internal/repositories"
)

// expenseService handles expense-related business logic. Every operation
// resolves the acting user first and only touches that user's expenses.
type expenseService struct {
	repo      repositories.ExpenseRepository
	users     UserServicer
	budgets   BudgetServicer
	publisher events.Publisher
	log       *zap.SugaredLogger
}

// NewExpenseService creates a new ExpenseServicer. A nil publisher disables
// expense events.
func NewExpenseService(
	repo repositories.ExpenseRepository,
	users UserServicer,
	budgets BudgetServicer,
	publisher events.Publisher,
) ExpenseServicer {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &expenseService{
		repo:      repo,
		users:     users,
		budgets:   budgets,
		publisher: publisher,
		log:       logger.Named("expenses"),
	}
}

func (s *expenseService) scope(usernameOrEmail string) (repositories.Scope, error) {
	user, err := s.users.ResolveUser(usernameOrEmail)
	if err != nil {
		return repositories.Scope{}, err
	}
	return repositories.ScopeFor(user), nil
}

// SaveExpense stores a new expense that is not linked to any budget.
func (s *expenseService) SaveExpense(usernameOrEmail string, expense *models.Expense) (*models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}
	return s.create(scope, expense, models.NoID())
}

// SaveExpenseWithBudget stores a new expense linked to one of the user's budgets.
func (s *expenseService) SaveExpenseWithBudget(usernameOrEmail string, budgetID uint, expense *models.Expense) (*models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	budget, err := s.budgets.ResolveBudget(usernameOrEmail, budgetID)
	if err != nil {
		return nil, err
	}
	return s.create(scope, expense, models.SomeID(budget.ID))
}

func (s *expenseService) create(scope repositories.Scope, expense *models.Expense, budgetID models.NullID) (*models.Expense, error) {
	if err := checkAmount(expense.Amount); err != nil {
		return nil, err
	}
	if err := checkCategory(expense.Category); err != nil {
		return nil, err
	}
	if err := checkSubcategory(expense.Subcategory); err != nil {
		return nil, err
	}

	created := &models.Expense{
		UserID:      scope.UserID(),
		Amount:      expense.Amount,
		Category:    expense.Category,
		Subcategory: expense.Subcategory,
		Description: strings.TrimSpace(expense.Description),
		BudgetID:    budgetID,
	}
	if err := s.repo.Create(created); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(events.ActionCreated, created)
	return created, nil
}

// UpdateExpenseByID changes a single field of one of the user's expenses.
func (s *expenseService) UpdateExpenseByID(usernameOrEmail string, expenseID uint, field UpdateField, value FieldValue) (*models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	expense, err := s.find(scope, expenseID)
	if err != nil {
		return nil, err
	}

	column, newValue, err := s.apply(usernameOrEmail, expense, field, value)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateColumn(expense, column, newValue); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(events.ActionUpdated, expense)
	return expense, nil
}

// apply sets field on expense and returns the column and value to persist.
func (s *expenseService) apply(usernameOrEmail string, expense *models.Expense, field UpdateField, value FieldValue) (string, interface{}, error) {
	verbatim, present := value.Get()
	raw := strings.TrimSpace(verbatim)

	switch field {
	case UpdateFieldAmount:
		if !present {
			return "", nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount cannot be cleared")
		}
		amount, err := parseAmount(raw)
		if err != nil {
			return "", nil, err
		}
		expense.Amount = amount
		return "amount", amount, nil

	case UpdateFieldCategory:
		if !present {
			return "", nil, apperrors.WithMessage(apperrors.ErrInvalidCategory, "category cannot be cleared")
		}
		category, err := parseCategory(raw)
		if err != nil {
			return "", nil, err
		}
		expense.Category = category
		return "category", category, nil

	case UpdateFieldSubcategory:
		expense.Subcategory = models.NoSubcategory()
		if present && raw != "" {
			sub, err := parseSubcategory(raw)
			if err != nil {
				return "", nil, err
			}
			expense.Subcategory = models.SomeSubcategory(sub)
		}
		return "subcategory", expense.Subcategory, nil

	case UpdateFieldDescription:
		expense.Description = verbatim
		return "description", verbatim, nil

	case UpdateFieldBudget:
		if !present || raw == "" {
			expense.BudgetID = models.NoID()
			return "budget_id", expense.BudgetID, nil
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return "", nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget must be a positive numeric id")
		}
		budget, err := s.budgets.ResolveBudget(usernameOrEmail, uint(id))
		if err != nil {
			return "", nil, err
		}
		expense.BudgetID = models.SomeID(budget.ID)
		return "budget_id", expense.BudgetID, nil
	}

	return "", nil, apperrors.WithMessage(apperrors.ErrUnknownUpdateField, "unknown field "+quote(field.String()))
}

// GetExpenseByID returns one of the user's expenses.
func (s *expenseService) GetExpenseByID(usernameOrEmail string, expenseID uint) (*models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}
	return s.find(scope, expenseID)
}

func (s *expenseService) find(scope repositories.Scope, expenseID uint) (*models.Expense, error) {
	expense, err := s.repo.FindByID(scope, expenseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetExpensesByBudget returns the user's expenses linked to one of their budgets.
func (s *expenseService) GetExpensesByBudget(usernameOrEmail string, budgetID uint) ([]models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	budget, err := s.budgets.ResolveBudget(usernameOrEmail, budgetID)
	if err != nil {
		return nil, err
	}
	return s.list(s.repo.FindByBudget(scope, budget.ID))
}

// GetAllExpenses returns every expense of the user.
func (s *expenseService) GetAllExpenses(usernameOrEmail string) ([]models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}
	return s.list(s.repo.FindAll(scope))
}

// GetExpensesByCategory returns the user's expenses in a category.
func (s *expenseService) GetExpensesByCategory(usernameOrEmail, categoryName string) ([]models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	category, err := parseCategory(categoryName)
	if err != nil {
		return nil, err
	}
	return s.list(s.repo.FindByCategory(scope, category))
}

// GetExpensesInPriceRange returns expenses with low <= amount <= high.
func (s *expenseService) GetExpensesInPriceRange(usernameOrEmail string, low, high float64) ([]models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	if low > high {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "low must not be greater than high")
	}
	return s.list(s.repo.FindInAmountRange(scope, low, high))
}

// GetExpensesGreaterThan returns expenses with amount strictly above the threshold.
func (s *expenseService) GetExpensesGreaterThan(usernameOrEmail string, amount float64) ([]models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}
	return s.list(s.repo.FindGreaterThan(scope, amount))
}

// GetExpensesLessThan returns expenses with amount strictly below the threshold.
func (s *expenseService) GetExpensesLessThan(usernameOrEmail string, amount float64) ([]models.Expense, error) {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return nil, err
	}
	return s.list(s.repo.FindLessThan(scope, amount))
}

func (s *expenseService) list(expenses []models.Expense, err error) ([]models.Expense, error) {
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// SortExpensesBy returns all of the user's expenses in ascending order of
// key. Equal keys keep id order and an absent subcategory sorts first.
func (s *expenseService) SortExpensesBy(usernameOrEmail string, key SortKey) ([]models.Expense, error) {
	compare, ok := comparators[key]
	if !ok {
		return nil, apperrors.ErrInvalidSortKey
	}

	expenses, err := s.GetAllExpenses(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(expenses, compare)
	return expenses, nil
}

var comparators = map[SortKey]func(a, b models.Expense) int{
	SortByAmount: func(a, b models.Expense) int {
		return cmp.Compare(a.Amount, b.Amount)
	},
	SortByCategory: func(a, b models.Expense) int {
		return cmp.Compare(a.Category.Ordinal(), b.Category.Ordinal())
	},
	SortBySubcategory: func(a, b models.Expense) int {
		return cmp.Compare(a.Subcategory.Ordinal(), b.Subcategory.Ordinal())
	},
}

// DeleteExpense removes one of the user's expenses.
func (s *expenseService) DeleteExpense(usernameOrEmail string, expenseID uint) error {
	scope, err := s.scope(usernameOrEmail)
	if err != nil {
		return err
	}

	expense, err := s.find(scope, expenseID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(expense); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(events.ActionDeleted, expense)
	return nil
}

// publish is best-effort: a broker failure never fails the write.
func (s *expenseService) publish(action events.Action, expense *models.Expense) {
	event := events.NewExpenseEvent(action, expense)
	if err := s.publisher.Publish(event); err != nil {
		s.log.Warnw("failed to publish expense event",
			"action", action,
			"expense_id", expense.ID,
			"routing_key", event.RoutingKey(),
			"error", err,
		)
	}
}
