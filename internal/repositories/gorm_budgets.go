package repositories

import (
	"gorm.io/gorm"

	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

type budgetGormRepository struct {
	db *gorm.DB
}

// NewBudgetRepository returns a BudgetRepository backed by gorm.
func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetGormRepository{db: db}
}

func (r *budgetGormRepository) Create(budget *models.Budget) error {
	return r.db.Create(budget).Error
}

func (r *budgetGormRepository) FindByID(scope Scope, id uint) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("id = ? AND user_id = ?", id, scope.UserID()).First(&budget).Error; err != nil {
		return nil, translate(err)
	}
	return &budget, nil
}

func (r *budgetGormRepository) FindAll(scope Scope, page pagination.PageRequest) ([]models.Budget, int64, error) {
	page.Defaults()

	base := r.db.Model(&models.Budget{}).Where("user_id = ?", scope.UserID())
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var budgets []models.Budget
	if err := base.Order("id ASC").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, 0, err
	}
	return budgets, total, nil
}

func (r *budgetGormRepository) Save(budget *models.Budget) error {
	return r.db.Save(budget).Error
}

func (r *budgetGormRepository) Delete(budget *models.Budget) error {
	return r.db.Delete(budget).Error
}
