package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// StreamOrders handles GET /api/v1/streams/orders
// Server-sent events feed of every order lifecycle event, for the admin
// dashboard. Closes when the client disconnects.
func (h *Handlers) StreamOrders(c *gin.Context) {
	h.streamEvents(c, "")
}

// StreamCustomerOrders handles GET /api/v1/customers/:id/streams/orders
// Like StreamOrders but narrowed to one customer's orders.
func (h *Handlers) StreamCustomerOrders(c *gin.Context) {
	h.streamEvents(c, c.Param("id"))
}

func (h *Handlers) streamEvents(c *gin.Context, customerID string) {
	if !h.config.Features.EnableOrderStreams {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "order streams are disabled"})
		return
	}

	ch, cancel := h.hub.Subscribe(customerID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// StreamCart handles GET /api/v1/customers/:id/cart/stream
// Server-sent events feed of cart snapshots: the current lines first,
// then the full list after every mutation.
func (h *Handlers) StreamCart(c *gin.Context) {
	customerID := c.Param("id")

	ch, err := h.cartService.Watch(c.Request.Context(), customerID)
	if err != nil {
		handleError(c, err)
		return
	}
	defer h.cartService.Unwatch(customerID, ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case items, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("cart", gin.H{"items": items, "count": countItems(items)})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func countItems(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
