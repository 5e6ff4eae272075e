package models

// Drink sizes. Every cart line carries one.
const (
	SizeSmall  = "Small"
	SizeMedium = "Medium"
	SizeLarge  = "Large"
)

// ValidSize reports whether s is one of the known drink sizes.
func ValidSize(s string) bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// CartItem is one product+size+quantity line in a customer's cart.
// Name, image and unit price are denormalized snapshots taken at
// add-time so the cart renders without catalog lookups.
type CartItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// LineTotal is the unit price times quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// AddCartItemRequest is the payload for adding a line to a cart.
type AddCartItemRequest struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// UpdateQuantityRequest sets a new quantity for a cart line.
type UpdateQuantityRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PriceBreakdown is the derived pricing view of a cart.
type PriceBreakdown struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// CartSummary pairs the current cart lines with their price breakdown.
type CartSummary struct {
	Items     []CartItem     `json:"items"`
	ItemCount int            `json:"item_count"`
	Pricing   PriceBreakdown `json:"pricing"`
}
