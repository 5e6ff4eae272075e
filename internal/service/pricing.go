package service

import (
	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// Subtotal sums price*quantity over all cart lines.
func Subtotal(items []models.CartItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	return subtotal
}

// CalculateTax computes tax on a subtotal. No rounding: totals stay in
// float currency units end to end.
func CalculateTax(subtotal, taxRate float64) float64 {
	return subtotal * taxRate
}

// CalculateBreakdown derives the full price breakdown for a cart. The
// delivery fee is flat and independent of cart contents.
func CalculateBreakdown(items []models.CartItem, pricing config.PricingConfig) models.PriceBreakdown {
	subtotal := Subtotal(items)
	tax := CalculateTax(subtotal, pricing.TaxRate)
	return models.PriceBreakdown{
		Subtotal:    subtotal,
		DeliveryFee: pricing.DeliveryFee,
		Tax:         tax,
		Total:       subtotal + pricing.DeliveryFee + tax,
	}
}
