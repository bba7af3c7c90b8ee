package repositories

import (
	"gorm.io/gorm"

	"spendwise/internal/models"
)

type expenseGormRepository struct {
	db *gorm.DB
}

// NewExpenseRepository returns an ExpenseRepository backed by gorm.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseGormRepository{db: db}
}

func (r *expenseGormRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseGormRepository) FindByID(scope Scope, id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := r.scoped(scope).Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, translate(err)
	}
	return &expense, nil
}

func (r *expenseGormRepository) FindAll(scope Scope) ([]models.Expense, error) {
	return r.find(r.scoped(scope))
}

func (r *expenseGormRepository) FindByCategory(scope Scope, category models.Category) ([]models.Expense, error) {
	return r.find(r.scoped(scope).Where("category = ?", category))
}

func (r *expenseGormRepository) FindByBudget(scope Scope, budgetID uint) ([]models.Expense, error) {
	return r.find(r.scoped(scope).Where("budget_id = ?", budgetID))
}

func (r *expenseGormRepository) FindInAmountRange(scope Scope, low, high float64) ([]models.Expense, error) {
	return r.find(r.scoped(scope).Where("amount BETWEEN ? AND ?", low, high))
}

func (r *expenseGormRepository) FindGreaterThan(scope Scope, amount float64) ([]models.Expense, error) {
	return r.find(r.scoped(scope).Where("amount > ?", amount))
}

func (r *expenseGormRepository) FindLessThan(scope Scope, amount float64) ([]models.Expense, error) {
	return r.find(r.scoped(scope).Where("amount < ?", amount))
}

func (r *expenseGormRepository) Save(expense *models.Expense) error {
	return r.db.Save(expense).Error
}

// UpdateColumn writes a single column so that concurrent updates of other
// fields on the same row are not overwritten.
func (r *expenseGormRepository) UpdateColumn(expense *models.Expense, column string, value interface{}) error {
	return r.db.Model(expense).Update(column, value).Error
}

func (r *expenseGormRepository) Delete(expense *models.Expense) error {
	return r.db.Delete(expense).Error
}

func (r *expenseGormRepository) scoped(scope Scope) *gorm.DB {
	return r.db.Model(&models.Expense{}).Where("user_id = ?", scope.UserID())
}

func (r *expenseGormRepository) find(q *gorm.DB) ([]models.Expense, error) {
	expenses := []models.Expense{}
	if err := q.Order("id ASC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}
