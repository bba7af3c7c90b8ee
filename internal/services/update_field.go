package services

import (
	"strings"

	apperrors "spendwise/internal/errors"
)

// UpdateField names the expense attribute changed by UpdateExpenseByID.
type UpdateField int

const (
	UpdateFieldAmount UpdateField = iota + 1
	UpdateFieldCategory
	UpdateFieldSubcategory
	UpdateFieldDescription
	UpdateFieldBudget
)

var updateFieldNames = map[UpdateField]string{
	UpdateFieldAmount:      "amount",
	UpdateFieldCategory:    "category",
	UpdateFieldSubcategory: "subcategory",
	UpdateFieldDescription: "description",
	UpdateFieldBudget:      "budget",
}

// ParseUpdateField maps a field name to its UpdateField. Unknown names fail
// with ErrUnknownUpdateField.
func ParseUpdateField(name string) (UpdateField, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range updateFieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, apperrors.WithMessage(apperrors.ErrUnknownUpdateField,
		"unknown field "+quote(name)+": must be one of amount, category, subcategory, description, budget")
}

func (f UpdateField) String() string {
	if n, ok := updateFieldNames[f]; ok {
		return n
	}
	return "unknown"
}

// FieldValue is the new value of an updated field. An absent value clears
// optional fields (subcategory, description, budget). A present value is
// kept verbatim; parsed fields trim it themselves.
type FieldValue struct {
	raw     string
	present bool
}

// NewFieldValue returns a present value.
func NewFieldValue(raw string) FieldValue {
	return FieldValue{raw: raw, present: true}
}

// AbsentValue returns a value that clears the field.
func AbsentValue() FieldValue {
	return FieldValue{}
}

// Get returns the raw value and whether it is present.
func (v FieldValue) Get() (string, bool) {
	return v.raw, v.present
}

// SortKey names the ordering applied by SortExpensesBy.
type SortKey int

const (
	SortByAmount SortKey = iota + 1
	SortByCategory
	SortBySubcategory
)

// ParseSortKey maps a key name to its SortKey. Unknown names fail with
// ErrInvalidSortKey.
func ParseSortKey(name string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "amount":
		return SortByAmount, nil
	case "category":
		return SortByCategory, nil
	case "subcategory":
		return SortBySubcategory, nil
	}
	return 0, apperrors.ErrInvalidSortKey
}

func (k SortKey) String() string {
	switch k {
	case SortByAmount:
		return "amount"
	case SortByCategory:
		return "category"
	case SortBySubcategory:
		return "subcategory"
	}
	return "unknown"
}

func quote(s string) string {
	return "'" + s + "'"
}
