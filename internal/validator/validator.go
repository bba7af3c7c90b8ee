// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"spendwise/internal/models"
)

var (
	standalone     *validator.Validate
	standaloneOnce sync.Once
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerAll(v)
	}
}

func registerAll(v *validator.Validate) {
	_ = v.RegisterValidation("expense_category", validateCategory)
	_ = v.RegisterValidation("user_role", validateUserRole)
}

func engine() *validator.Validate {
	standaloneOnce.Do(func() {
		standalone = validator.New()
		registerAll(standalone)
	})
	return standalone
}

// IsValidEmail reports whether s has the shape of an email address.
func IsValidEmail(s string) bool {
	return engine().Var(s, "required,email") == nil
}

func validateCategory(fl validator.FieldLevel) bool {
	_, ok := models.ParseCategory(fl.Field().String())
	return ok
}

func validateUserRole(fl validator.FieldLevel) bool {
	_, ok := models.ParseRole(fl.Field().String())
	return ok
}
