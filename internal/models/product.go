package models

import "time"

// Product is a catalog entry. The catalog store owns all product
// mutations; everything else works on read-only snapshots.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	Rating      *float64  `json:"rating,omitempty"`
	Extra       string    `json:"extra,omitempty"`
}

// SortBy enumerates catalog sort modes.
type SortBy string

const (
	SortNone      SortBy = "none"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
	SortNameAsc   SortBy = "name_asc"
	SortNameDesc  SortBy = "name_desc"
)

// Default price bounds for the filter pipeline. MaxFilterPrice spans the
// full expected price space of the catalog.
const (
	MinFilterPrice = 0.0
	MaxFilterPrice = 150000.0
)

// ProductFilter holds the stateful filter parameters applied to a
// catalog snapshot. Zero values mean "no filter" except the price
// bounds, which default via NewProductFilter.
type ProductFilter struct {
	Category      string  `json:"category" form:"category"`
	SearchQuery   string  `json:"search_query" form:"q"`
	SortBy        SortBy  `json:"sort_by" form:"sort_by"`
	MinPrice      float64 `json:"min_price" form:"min_price"`
	MaxPrice      float64 `json:"max_price" form:"max_price"`
	AvailableOnly bool    `json:"available_only" form:"available_only"`
}

// NewProductFilter returns a filter that passes every product.
func NewProductFilter() ProductFilter {
	return ProductFilter{
		SortBy:   SortNone,
		MinPrice: MinFilterPrice,
		MaxPrice: MaxFilterPrice,
	}
}

// CreateProductRequest is the admin payload for adding a product.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	IsAvailable bool     `json:"is_available"`
	Rating      *float64 `json:"rating,omitempty"`
	Extra       string   `json:"extra,omitempty"`
}
