package service

import (
	"strings"
	"unicode/utf8"

	"github.com/coffeehub/coffeehub-storefront-service/internal/apperrors"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// ValidateAddCartItemRequest validates a cart add request.
func ValidateAddCartItemRequest(req *models.AddCartItemRequest) error {
	if req.ProductID == "" {
		return apperrors.NewValidationError("product_id", "product ID is required")
	}
	if !models.ValidSize(req.Size) {
		return apperrors.NewValidationError("size", "size must be Small, Medium or Large")
	}
	if req.Quantity <= 0 {
		return apperrors.NewValidationError("quantity", "quantity must be positive")
	}
	if req.Price < 0 {
		return apperrors.NewValidationError("price", "unit price cannot be negative")
	}
	return nil
}

// ValidateCreateOrderRequest validates a checkout request before any
// state mutation happens.
func ValidateCreateOrderRequest(req *models.CreateOrderRequest) error {
	if req.CustomerID == "" {
		return apperrors.NewValidationError("customer_id", "customer ID is required")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return apperrors.NewValidationError("customer_name", "customer name is required")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return apperrors.NewValidationError("customer_phone", "customer phone is required")
	}
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("items", "at least one item is required")
	}
	for _, item := range req.Items {
		if item.ProductID == "" {
			return apperrors.NewValidationError("items", "product ID is required for item")
		}
		if item.Quantity <= 0 {
			return apperrors.NewValidationError("items", "quantity must be positive")
		}
		if item.Price < 0 {
			return apperrors.NewValidationError("items", "unit price cannot be negative")
		}
		if !models.ValidSize(item.Size) {
			return apperrors.NewValidationError("items", "size must be Small, Medium or Large")
		}
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return apperrors.NewValidationError("payment_method", "payment method must be Cash or Card")
	}
	return nil
}

// ValidateUpdateOrderStatusRequest validates a status update request.
// Transition legality is checked separately against the current order.
func ValidateUpdateOrderStatusRequest(req *models.UpdateOrderStatusRequest) error {
	if req.Status == "" {
		return apperrors.NewValidationError("status", "status is required")
	}
	if !models.ValidOrderStatus(req.Status) {
		return apperrors.NewValidationError("status", "invalid order status")
	}
	return nil
}

// ValidateCreateProductRequest validates an admin product payload.
func ValidateCreateProductRequest(req *models.CreateProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name", "product name is required")
	}
	if req.Price < 0 {
		return apperrors.NewValidationError("price", "price cannot be negative")
	}
	if req.Stock < 0 {
		return apperrors.NewValidationError("stock", "stock cannot be negative")
	}
	return nil
}

// maxNoteBytes caps order notes. The cut always lands on a rune
// boundary so the stored text stays valid UTF-8.
const maxNoteBytes = 1000

// SanitizeNotes trims order notes and caps their length.
func SanitizeNotes(notes string) string {
	notes = strings.TrimSpace(notes)
	if len(notes) > maxNoteBytes {
		cut := maxNoteBytes
		for cut > 0 && !utf8.RuneStart(notes[cut]) {
			cut--
		}
		notes = notes[:cut]
	}
	return notes
}
