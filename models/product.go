package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryCount is a catalog filter option.
type CategoryCount struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ProductImage struct {
	ID           int64  `json:"id"`
	Src          string `json:"src"`
	Alt          string `json:"alt"`
	CloudinaryID string `json:"-"`
	Position     int    `json:"position"`
}

type ProductVariant struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	Position        int             `json:"position"`
}

type Product struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	CategoryID   int                 `json:"category_id"`
	CategoryName string              `json:"category"`
	Price        decimal.Decimal     `json:"price"`
	SalePrice    decimal.NullDecimal `json:"sale_price"`
	Rating       decimal.Decimal     `json:"rating"`
	Stock        int                 `json:"stock"`
	SKU          string              `json:"sku"`
	IsActive     bool                `json:"is_active"`
	Images       []ProductImage      `json:"images"`
	Variants     []ProductVariant    `json:"variants,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// PrimaryImage is the first image by position, or the zero value.
func (p Product) PrimaryImage() ProductImage {
	if len(p.Images) == 0 {
		return ProductImage{}
	}
	return p.Images[0]
}

// HasValidSale reports whether SalePrice is set and below Price.
func (p Product) HasValidSale() bool {
	return p.SalePrice.Valid && !p.SalePrice.Decimal.IsNegative() && p.SalePrice.Decimal.LessThan(p.Price)
}

// EffectivePrice is the sale price when valid, otherwise the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.HasValidSale() {
		return p.SalePrice.Decimal
	}
	return p.Price
}

// Variant finds a variant by case-insensitive name.
func (p Product) Variant(name string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if equalFold(v.Name, name) {
			return v, true
		}
	}
	return ProductVariant{}, false
}

type ProductFilter struct {
	Search     string
	CategoryID int
	Page       int
	Limit      int
}
