package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. Products are immutable once loaded.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}
