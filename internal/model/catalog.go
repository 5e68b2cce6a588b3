package model

import (
	"slices"
	"time"
)

// ProductCategory groups products on the catalogue page.
type ProductCategory string

const (
	CategoryCase        ProductCategory = "case"
	CategoryCharger     ProductCategory = "charger"
	CategoryAccessories ProductCategory = "accessories"
)

// ValidProductCategories contains all valid product categories.
var ValidProductCategories = []ProductCategory{CategoryCase, CategoryCharger, CategoryAccessories}

// IsValid checks if the category is known.
func (c ProductCategory) IsValid() bool {
	return slices.Contains(ValidProductCategories, c)
}

// DefaultProductIcon is used when a product is saved without an icon class.
const DefaultProductIcon = "fas fa-box"

// Product is a catalogue entry.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Icon        string          `json:"icon"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	ImageURL    *string         `json:"image_url"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PortfolioItem is a showcase entry ordered by DisplayOrder.
type PortfolioItem struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Category     string    `json:"category"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
