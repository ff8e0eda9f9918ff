package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProductImage is used when a product is created without an uploaded image.
const DefaultProductImage = "produto-default.jpg"

// Product is the model for the 'products' table.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	Image       string          `json:"image" db:"image"`
	Description string          `json:"description" db:"description"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// ProductFilter narrows a catalog listing. Empty fields match everything;
// non-empty fields are case-insensitive substring matches.
type ProductFilter struct {
	Category string
	Name     string
}
