package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups menu items and carries the complements generally offered to them.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:120;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Addition is a global, reusable complement (e.g. extra cheese).
type Addition struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:120;uniqueIndex;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CategoryAddition links a category to a complement it offers. The set is replaced as a whole.
type CategoryAddition struct {
	CategoryID uint      `json:"category_id" gorm:"primaryKey;autoIncrement:false"`
	AdditionID uint      `json:"addition_id" gorm:"primaryKey;autoIncrement:false"`
	Category   *Category `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Addition   *Addition `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

// MenuItem is a sellable product. Price is the live menu price; orders keep their own copy.
type MenuItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:160;uniqueIndex;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID  uint            `json:"category_id" gorm:"index;not null"`
	Category    *Category       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Description string          `json:"description" gorm:"size:500"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemAddition attaches a complement to one item and optionally makes it mandatory there.
// No row means "offered through the category, optional".
type ItemAddition struct {
	MenuItemID  uint      `json:"menu_item_id" gorm:"primaryKey;autoIncrement:false"`
	AdditionID  uint      `json:"addition_id" gorm:"primaryKey;autoIncrement:false"`
	IsMandatory bool      `json:"is_mandatory" gorm:"not null;default:false"`
	MenuItem    *MenuItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Addition    *Addition `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

// ExclusiveComplement exists only for a single item and is not part of the global catalog.
type ExclusiveComplement struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	MenuItemID  uint            `json:"menu_item_id" gorm:"uniqueIndex:idx_exclusive_item_name;not null"`
	Name        string          `json:"name" gorm:"size:120;uniqueIndex:idx_exclusive_item_name;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	IsMandatory bool            `json:"is_mandatory" gorm:"not null;default:false"`
	MenuItem    *MenuItem       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Neighborhood is a delivery area with its own fee.
type Neighborhood struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:120;uniqueIndex;not null"`
	DeliveryFee decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
