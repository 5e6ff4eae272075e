package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/apperrors"
	"github.com/coffeehub/coffeehub-storefront-service/internal/clients"
	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/metrics"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
	"github.com/coffeehub/coffeehub-storefront-service/internal/repository"
)

// OrderEventPublisher publishes order lifecycle events.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error
	PublishOrderCancelled(ctx context.Context, order *models.Order, reason string) error
}

// OrderStore is the subset of the order repository the service needs.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*models.Order, error)
	ListPending(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, notes string) (*models.Order, error)
}

var _ OrderStore = (*repository.OrderRepository)(nil)

// OrderService handles checkout and the order status lifecycle.
type OrderService struct {
	orders         OrderStore
	authClient     clients.AuthClient
	eventPublisher OrderEventPublisher
	config         *config.Config
	logger         *zap.Logger
}

// NewOrderService creates an order service.
func NewOrderService(
	orders OrderStore,
	authClient clients.AuthClient,
	eventPublisher OrderEventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:         orders,
		authClient:     authClient,
		eventPublisher: eventPublisher,
		config:         cfg,
		logger:         logger,
	}
}

// CreateOrder places an order from cart lines. Each cart line maps
// 1:1 to an order line; totals come from the pricing rules; status
// starts at PENDING. The cart itself is untouched here: the checkout
// caller clears it only after this returns success.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	start := time.Now()

	if err := ValidateCreateOrderRequest(req); err != nil {
		return nil, err
	}

	if s.config.Features.ValidateCustomers {
		valid, err := s.authClient.ValidateUser(ctx, req.CustomerID)
		if err != nil {
			s.logger.Error("Failed to validate customer",
				zap.String("customer_id", req.CustomerID),
				zap.Error(err),
			)
			return nil, apperrors.NewExternalError("auth service", "failed to validate customer", err)
		}
		if !valid {
			return nil, apperrors.NewValidationError("customer_id", "customer not found")
		}
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, line := range req.Items {
		items[i] = models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Size:        line.Size,
			Quantity:    line.Quantity,
			Price:       line.Price,
			ImageURL:    line.ProductImage,
		}
	}

	breakdown := CalculateBreakdown(req.Items, s.config.Pricing)

	order := &models.Order{
		ID:            uuid.NewString(),
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
		Subtotal:      breakdown.Subtotal,
		DeliveryFee:   breakdown.DeliveryFee,
		Tax:           breakdown.Tax,
		Total:         breakdown.Total,
		PaymentMethod: req.PaymentMethod,
		IsPaid:        false,
		Status:        models.OrderStatusPending,
		Timestamp:     time.Now().UTC(),
		Notes:         SanitizeNotes(req.Notes),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.eventPublisher.PublishOrderCreated(ctx, order); err != nil {
			// Log but don't fail: the order is already durable.
			s.logger.Error("Failed to publish order created event",
				zap.String("order_id", order.ID),
				zap.Error(err),
			)
		}
	}

	metrics.OrdersCreated.Inc()
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
		zap.Int("item_count", len(order.Items)),
		zap.Float64("total", order.Total),
	)

	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListAllOrders returns every order, newest first.
func (s *OrderService) ListAllOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orders.ListAll(ctx)
}

// ListCustomerOrders returns one customer's orders, newest first.
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]*models.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// ListPendingOrders returns PENDING orders oldest first.
func (s *OrderService) ListPendingOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orders.ListPending(ctx)
}

// UpdateOrderStatus moves an order through the status machine. The
// transition is validated against the current status before any write.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := ValidateUpdateOrderStatusRequest(req); err != nil {
		return nil, err
	}

	currentOrder, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isValidStatusTransition(currentOrder.Status, req.Status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf(
			"invalid status transition from %s to %s",
			currentOrder.Status,
			req.Status,
		))
	}

	previousStatus := currentOrder.Status

	order, err := s.orders.UpdateStatus(ctx, id, req.Status, SanitizeNotes(req.Notes))
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.eventPublisher.PublishOrderStatusChanged(ctx, order, previousStatus); err != nil {
			s.logger.Error("Failed to publish status change event",
				zap.String("order_id", order.ID),
				zap.Error(err),
			)
		}
	}

	metrics.OrderStatusChanges.WithLabelValues(string(order.Status)).Inc()
	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID),
		zap.String("previous_status", string(previousStatus)),
		zap.String("new_status", string(order.Status)),
	)

	return order, nil
}

// CancelOrder cancels an order that is still PENDING.
func (s *OrderService) CancelOrder(ctx context.Context, id, reason string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.CanCancel() {
		return nil, apperrors.NewValidationError("status", "order cannot be cancelled in current state")
	}

	previousStatus := order.Status

	order, err = s.orders.UpdateStatus(ctx, id, models.OrderStatusCancelled, SanitizeNotes(reason))
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.eventPublisher.PublishOrderCancelled(ctx, order, reason); err != nil {
			s.logger.Error("Failed to publish order cancelled event",
				zap.String("order_id", order.ID),
				zap.Error(err),
			)
		}
	}

	metrics.OrderStatusChanges.WithLabelValues(string(models.OrderStatusCancelled)).Inc()
	s.logger.Info("Order cancelled",
		zap.String("order_id", order.ID),
		zap.String("previous_status", string(previousStatus)),
		zap.String("reason", reason),
	)

	return order, nil
}

// isValidStatusTransition is the single authority on the order status
// machine: PENDING -> PREPARING -> READY -> COMPLETED, with CANCELLED
// reachable from PENDING only. Every transition is one-directional and
// terminal states allow nothing.
func isValidStatusTransition(from, to models.OrderStatus) bool {
	validTransitions := map[models.OrderStatus][]models.OrderStatus{
		models.OrderStatusPending:   {models.OrderStatusPreparing, models.OrderStatusCancelled},
		models.OrderStatusPreparing: {models.OrderStatusReady},
		models.OrderStatusReady:     {models.OrderStatusCompleted},
		models.OrderStatusCompleted: {},
		models.OrderStatusCancelled: {},
	}

	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// NextStatus returns the single forward transition offered for an
// order, or false for terminal states. This is what the admin UI
// surfaces as the one-step action.
func NextStatus(from models.OrderStatus) (models.OrderStatus, bool) {
	switch from {
	case models.OrderStatusPending:
		return models.OrderStatusPreparing, true
	case models.OrderStatusPreparing:
		return models.OrderStatusReady, true
	case models.OrderStatusReady:
		return models.OrderStatusCompleted, true
	}
	return "", false
}
