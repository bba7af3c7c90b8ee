package services

import (
	"math"
	"strconv"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

func checkAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

func checkCategory(c models.Category) error {
	if !c.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidCategory, "unknown category "+quote(string(c)))
	}
	return nil
}

func checkSubcategory(n models.NullSubcategory) error {
	if n.Valid && !n.Subcategory.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidSubcategory, "unknown subcategory "+quote(string(n.Subcategory)))
	}
	return nil
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount "+quote(raw)+" is not a number")
	}
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}

func parseCategory(raw string) (models.Category, error) {
	c, ok := models.ParseCategory(raw)
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrInvalidCategory, "unknown category "+quote(raw))
	}
	return c, nil
}

func parseSubcategory(raw string) (models.Subcategory, error) {
	s, ok := models.ParseSubcategory(raw)
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrInvalidSubcategory, "unknown subcategory "+quote(raw))
	}
	return s, nil
}
