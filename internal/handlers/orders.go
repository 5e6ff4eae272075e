package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
	"github.com/coffeehub/coffeehub-storefront-service/internal/service"
)

// CheckoutRequest is the payload for placing an order from the current
// cart. The cart is cleared only after the order is durable.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

// Checkout handles POST /api/v1/customers/:id/checkout
func (h *Handlers) Checkout(c *gin.Context) {
	customerID := c.Param("id")

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, err := h.cartService.Items(c.Request.Context(), customerID)
	if err != nil {
		handleError(c, err)
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &models.CreateOrderRequest{
		CustomerID:    customerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), customerID); err != nil {
		// Order is placed; a stale cart is recoverable.
		h.logger.Warn("Failed to clear cart after checkout")
	}

	c.JSON(http.StatusCreated, order)
}

// CreateOrder handles POST /api/v1/orders
// Direct order placement with explicit line items, bypassing the cart.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /api/v1/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /api/v1/orders
// ?status=pending narrows to the kitchen queue, oldest first.
func (h *Handlers) ListOrders(c *gin.Context) {
	var orders []*models.Order
	var err error

	if c.Query("status") == "pending" {
		orders, err = h.orderService.ListPendingOrders(c.Request.Context())
	} else {
		orders, err = h.orderService.ListAllOrders(c.Request.Context())
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// ListCustomerOrders handles GET /api/v1/customers/:id/orders
func (h *Handlers) ListCustomerOrders(c *gin.Context) {
	orders, err := h.orderService.ListCustomerOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	next, hasNext := service.NextStatus(order.Status)
	resp := gin.H{"order": order}
	if hasNext {
		resp["next_status"] = next
	}
	c.JSON(http.StatusOK, resp)
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance
// Moves the order one step forward through the status machine.
func (h *Handlers) AdvanceOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	next, ok := service.NextStatus(order.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order is in a terminal state"})
		return
	}

	order, err = h.orderService.UpdateOrderStatus(c.Request.Context(), order.ID, &models.UpdateOrderStatusRequest{
		Status: next,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel
func (h *Handlers) CancelOrder(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	// An empty body is a cancel without a reason.
	_ = c.ShouldBindJSON(&req)

	order, err := h.orderService.CancelOrder(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
