package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Menu categories shown on the storefront.
const (
	CategoryCafes     = "cafes"
	CategoryBebidas   = "bebidas"
	CategoryDoces     = "doces"
	CategoryEspeciais = "especiais"
)

// ValidCategories lists the accepted product categories in menu order.
var ValidCategories = []string{CategoryCafes, CategoryBebidas, CategoryDoces, CategoryEspeciais}

// IsValidCategory reports whether category is one of ValidCategories.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ProductFilter holds listing criteria for catalog queries
type ProductFilter struct {
	Category      *string `json:"category,omitempty"`
	AvailableOnly bool    `json:"available_only,omitempty"`
	Limit         int     `json:"limit,omitempty"`
	Offset        int     `json:"offset,omitempty"`
}

type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price_cents"`
	Category    string          `json:"category" db:"category"`
	ImageKey    *string         `json:"image_key,omitempty" db:"image_key"`
	ImageURL    string          `json:"image_url,omitempty" db:"-"` // presigned, filled on read
	Available   bool            `json:"available" db:"available"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductInput carries the admin-editable product fields.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Available   *bool           `json:"available,omitempty"`
}
