package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// GetCart handles GET /api/v1/customers/:id/cart
// Returns the lines plus the derived price breakdown.
func (h *Handlers) GetCart(c *gin.Context) {
	summary, err := h.cartService.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AddCartItem handles POST /api/v1/customers/:id/cart/items
func (h *Handlers) AddCartItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, err := h.cartService.AddItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RemoveCartItem handles DELETE /api/v1/customers/:id/cart/items/:productId
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	items, err := h.cartService.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateCartQuantity handles PUT /api/v1/customers/:id/cart/items
func (h *Handlers) UpdateCartQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, err := h.cartService.UpdateQuantity(c.Request.Context(), c.Param("id"), req.ProductID, req.Quantity)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ClearCart handles DELETE /api/v1/customers/:id/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// GetCartCount handles GET /api/v1/customers/:id/cart/count
func (h *Handlers) GetCartCount(c *gin.Context) {
	count, err := h.cartService.ItemCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
