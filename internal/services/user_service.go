package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/repositories"
	"spendwise/internal/validator"
)

// userService handles user-related business logic.
type userService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserServicer.
func NewUserService(repo repositories.UserRepository) UserServicer {
	return &userService{repo: repo}
}

// ResolveUser finds a user by username first and by email second.
func (s *userService) ResolveUser(usernameOrEmail string) (*models.User, error) {
	key := strings.TrimSpace(usernameOrEmail)
	if key == "" {
		return nil, apperrors.ErrUserNotFound
	}

	user, err := s.repo.FindByUsername(key)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user, err = s.repo.FindByEmail(strings.ToLower(key))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// CreateUser registers a new user with the default role.
func (s *userService) CreateUser(username, email, password, name string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username, email and password are required")
	}

	exists, err := s.repo.ExistsByEmail(email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	exists, err = s.repo.ExistsByUsername(username)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateUsername
	}

	// ResolveUser tries usernames before emails, so a username must never
	// look like an address.
	if strings.ContainsRune(username, '@') {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username cannot contain '@'")
	}

	if !validator.IsValidEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Name:     strings.TrimSpace(name),
		Role:     models.RoleUser,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// UpdateName replaces the display name of a user.
func (s *userService) UpdateName(usernameOrEmail, name string) (*models.User, error) {
	user, err := s.ResolveUser(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(name)
	if err := s.repo.Save(user); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// DeleteUser removes a user.
func (s *userService) DeleteUser(usernameOrEmail string) error {
	user, err := s.ResolveUser(usernameOrEmail)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(user); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetAllUsers returns a page of users ordered by id. It fails with
// ErrNoUsersFound when nobody is registered.
func (s *userService) GetAllUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	page.Defaults()

	users, total, err := s.repo.FindAll(page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if total == 0 {
		return nil, apperrors.ErrNoUsersFound
	}

	resp := pagination.NewPageResponse(users, page.Page, page.PageSize, total)
	return &resp, nil
}

// SetRole changes the authorization level of a user.
func (s *userService) SetRole(usernameOrEmail string, role models.Role) (*models.User, error) {
	parsed, ok := models.ParseRole(string(role))
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role must be USER or ADMIN")
	}

	user, err := s.ResolveUser(usernameOrEmail)
	if err != nil {
		return nil, err
	}

	user.Role = parsed
	if err := s.repo.Save(user); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// AttemptLogin resolves the user and checks the password. Unknown users and
// wrong passwords fail the same way.
func (s *userService) AttemptLogin(usernameOrEmail, password string) (*models.User, error) {
	user, err := s.ResolveUser(usernameOrEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
