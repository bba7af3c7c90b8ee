package models

import "strings"

// Category is the closed set of spending classifications shared by budgets
// and expenses. Declaration order defines the sort order.
type Category string

const (
	CategoryHousing       Category = "Housing"
	CategoryTransport     Category = "Transport"
	CategoryFood          Category = "Food"
	CategoryUtilities     Category = "Utilities"
	CategoryInsurance     Category = "Insurance"
	CategoryHealthcare    Category = "Healthcare"
	CategorySavings       Category = "Savings"
	CategoryDebt          Category = "Debt"
	CategoryPersonal      Category = "Personal"
	CategoryEntertainment Category = "Entertainment"
	CategoryMiscellaneous Category = "Miscellaneous"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryHousing,
	CategoryTransport,
	CategoryFood,
	CategoryUtilities,
	CategoryInsurance,
	CategoryHealthcare,
	CategorySavings,
	CategoryDebt,
	CategoryPersonal,
	CategoryEntertainment,
	CategoryMiscellaneous,
}

var categoryOrdinals = ordinals(Categories)

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) (Category, bool) {
	return lookup(Categories, s)
}

// Ordinal returns the position of c in Categories, or -1 if c is unknown.
func (c Category) Ordinal() int {
	if i, ok := categoryOrdinals[c]; ok {
		return i
	}
	return -1
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool { return c.Ordinal() >= 0 }

// Subcategory refines a Category. Declaration order defines the sort order.
type Subcategory string

const (
	SubcategoryBasic           Subcategory = "Basic"
	SubcategoryEssential       Subcategory = "Essential"
	SubcategoryLuxury          Subcategory = "Luxury"
	SubcategoryInvestments     Subcategory = "Investments"
	SubcategoryEmergency       Subcategory = "Emergency"
	SubcategoryRetirement      Subcategory = "Retirement"
	SubcategoryGroceries       Subcategory = "Groceries"
	SubcategoryDining          Subcategory = "Dining"
	SubcategoryFuel            Subcategory = "Fuel"
	SubcategoryPublicTransport Subcategory = "PublicTransport"
	SubcategoryRent            Subcategory = "Rent"
	SubcategoryMortgage        Subcategory = "Mortgage"
	SubcategorySubscriptions   Subcategory = "Subscriptions"
	SubcategoryGifts           Subcategory = "Gifts"
	SubcategoryOther           Subcategory = "Other"
)

// Subcategories lists every subcategory in declaration order.
var Subcategories = []Subcategory{
	SubcategoryBasic,
	SubcategoryEssential,
	SubcategoryLuxury,
	SubcategoryInvestments,
	SubcategoryEmergency,
	SubcategoryRetirement,
	SubcategoryGroceries,
	SubcategoryDining,
	SubcategoryFuel,
	SubcategoryPublicTransport,
	SubcategoryRent,
	SubcategoryMortgage,
	SubcategorySubscriptions,
	SubcategoryGifts,
	SubcategoryOther,
}

var subcategoryOrdinals = ordinals(Subcategories)

// ParseSubcategory matches s case-insensitively against the known subcategories.
func ParseSubcategory(s string) (Subcategory, bool) {
	return lookup(Subcategories, s)
}

// Ordinal returns the position of s in Subcategories, or -1 if s is unknown.
func (s Subcategory) Ordinal() int {
	if i, ok := subcategoryOrdinals[s]; ok {
		return i
	}
	return -1
}

// Valid reports whether s is one of the declared subcategories.
func (s Subcategory) Valid() bool { return s.Ordinal() >= 0 }

func ordinals[T ~string](values []T) map[T]int {
	m := make(map[T]int, len(values))
	for i, v := range values {
		m[v] = i
	}
	return m
}

func lookup[T ~string](values []T, s string) (T, bool) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
