package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("size", "size must be Small, Medium or Large")

	if !IsValidation(err) {
		t.Error("IsValidation = false")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("IsValidation matched a plain error")
	}

	wrapped := fmt.Errorf("add item: %w", err)
	if !IsValidation(wrapped) {
		t.Error("IsValidation = false for wrapped error")
	}

	var ve *ValidationError
	if !errors.As(wrapped, &ve) || ve.Field != "size" {
		t.Errorf("unexpected field: %+v", ve)
	}
}

func TestExternalError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewExternalError("cart store", "failed to save cart", cause)

	if !IsExternal(err) {
		t.Error("IsExternal = false")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable via errors.Is")
	}
}
