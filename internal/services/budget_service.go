package services

import (
	"errors"
	"strings"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/repositories"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	repo  repositories.BudgetRepository
	users UserServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(repo repositories.BudgetRepository, users UserServicer) BudgetServicer {
	return &budgetService{repo: repo, users: users}
}

// ResolveBudget returns a budget owned by the given user.
func (s *budgetService) ResolveBudget(usernameOrEmail string, budgetID uint) (*models.Budget, error) {
	user, err := s.users.ResolveUser(usernameOrEmail)
	if err != nil {
		return nil, err
	}
	return s.find(repositories.ScopeFor(user), budgetID)
}

func (s *budgetService) find(scope repositories.Scope, budgetID uint) (*models.Budget, error) {
	budget, err := s.repo.FindByID(scope, budgetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// SaveBudget stores a new budget for the given user. The owner and id on
// the input are ignored.
func (s *budgetService) SaveBudget(usernameOrEmail string, budget *models.Budget) (*models.Budget, error) {
	user, err := s.users.ResolveUser(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	if err := checkAmount(budget.Amount); err != nil {
		return nil, err
	}
	if err := checkCategory(budget.Category); err != nil {
		return nil, err
	}
	if err := checkSubcategory(budget.Subcategory); err != nil {
		return nil, err
	}

	created := &models.Budget{
		UserID:      user.ID,
		Amount:      budget.Amount,
		Category:    budget.Category,
		Subcategory: budget.Subcategory,
		Description: strings.TrimSpace(budget.Description),
	}
	if err := s.repo.Create(created); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return created, nil
}

// GetAllBudgets returns a page of the user's budgets ordered by id.
func (s *budgetService) GetAllBudgets(usernameOrEmail string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	user, err := s.users.ResolveUser(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	page.Defaults()
	budgets, total, err := s.repo.FindAll(repositories.ScopeFor(user), page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(budgets, page.Page, page.PageSize, total)
	return &resp, nil
}

// UpdateBudget applies the non-nil fields of update to a budget owned by the user.
func (s *budgetService) UpdateBudget(usernameOrEmail string, budgetID uint, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.ResolveBudget(usernameOrEmail, budgetID)
	if err != nil {
		return nil, err
	}

	if update.Amount != nil {
		if err := checkAmount(*update.Amount); err != nil {
			return nil, err
		}
		budget.Amount = *update.Amount
	}
	if update.Category != nil {
		if err := checkCategory(*update.Category); err != nil {
			return nil, err
		}
		budget.Category = *update.Category
	}
	if update.Subcategory != nil {
		if err := checkSubcategory(*update.Subcategory); err != nil {
			return nil, err
		}
		budget.Subcategory = *update.Subcategory
	}
	if update.Description != nil {
		budget.Description = strings.TrimSpace(*update.Description)
	}

	if err := s.repo.Save(budget); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// DeleteBudget removes a budget owned by the user. Expenses linked to it
// keep their reference.
func (s *budgetService) DeleteBudget(usernameOrEmail string, budgetID uint) error {
	budget, err := s.ResolveBudget(usernameOrEmail, budgetID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(budget); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
