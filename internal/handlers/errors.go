package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coffeehub/coffeehub-storefront-service/internal/apperrors"
)

// handleError maps the service error taxonomy onto HTTP responses.
// Validation failures carry the offending field; external failures
// surface their operation label but not the wrapped cause.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": ve.Message,
			"field": ve.Field,
		})
		return
	}

	var ee *apperrors.ExternalError
	if errors.As(err, &ee) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": ee.Op + ": " + ee.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
