package repositories

import (
	"errors"

	"gorm.io/gorm"

	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

type userGormRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a UserRepository backed by gorm.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userGormRepository{db: db}
}

func (r *userGormRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userGormRepository) FindByID(id uint) (*models.User, error) {
	return r.first("id = ?", id)
}

func (r *userGormRepository) FindByUsername(username string) (*models.User, error) {
	return r.first("username = ?", username)
}

func (r *userGormRepository) FindByEmail(email string) (*models.User, error) {
	return r.first("email = ?", email)
}

func (r *userGormRepository) first(query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.Where(query, arg).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userGormRepository) ExistsByEmail(email string) (bool, error) {
	return r.exists("email = ?", email)
}

func (r *userGormRepository) ExistsByUsername(username string) (bool, error) {
	return r.exists("username = ?", username)
}

func (r *userGormRepository) exists(query string, arg interface{}) (bool, error) {
	var count int64
	if err := r.db.Unscoped().Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userGormRepository) FindAll(page pagination.PageRequest) ([]models.User, int64, error) {
	page.Defaults()

	base := r.db.Model(&models.User{})
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := base.Order("id ASC").Scopes(pagination.Paginate(page)).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userGormRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userGormRepository) Delete(user *models.User) error {
	return r.db.Delete(user).Error
}

// translate maps gorm's not-found sentinel onto the package's own.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
