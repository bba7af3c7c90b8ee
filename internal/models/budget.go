package models

// Budget is an amount a user sets aside for a category.
type Budget struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Category    Category        `gorm:"type:varchar(32);not null" json:"category"`
	Subcategory NullSubcategory `gorm:"column:subcategory;type:varchar(32)" json:"subcategory"`
	Description string          `json:"description"`
}
