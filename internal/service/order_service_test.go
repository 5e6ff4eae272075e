package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/apperrors"
	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/events"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// fakeOrderStore is an in-memory OrderStore for service tests.
type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.Order)}
}

func (s *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *order
	s.orders[order.ID] = &copied
	return nil
}

func (s *fakeOrderStore) GetByID(_ context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *fakeOrderStore) ListAll(_ context.Context) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Order{}
	for _, order := range s.orders {
		copied := *order
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeOrderStore) ListByCustomer(_ context.Context, customerID string) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Order{}
	for _, order := range s.orders {
		if order.CustomerID == customerID {
			copied := *order
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListPending(_ context.Context) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Order{}
	for _, order := range s.orders {
		if order.Status == models.OrderStatusPending {
			copied := *order
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id string, status models.OrderStatus, notes string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	order.Status = status
	if notes != "" {
		order.Notes = notes
	}
	copied := *order
	return &copied, nil
}

// fakeAuthClient answers user lookups from a fixed set.
type fakeAuthClient struct {
	known map[string]bool
}

func (c *fakeAuthClient) GetUser(_ context.Context, userID string) (*models.User, error) {
	if !c.known[userID] {
		return nil, nil
	}
	return &models.User{ID: userID}, nil
}

func (c *fakeAuthClient) ValidateUser(_ context.Context, userID string) (bool, error) {
	return c.known[userID], nil
}

func testConfig() *config.Config {
	return &config.Config{
		Pricing: config.PricingConfig{DeliveryFee: 10000, TaxRate: 0.10},
		Features: config.FeatureFlags{
			EnableOrderEvents: true,
			ValidateCustomers: true,
		},
	}
}

func newTestOrderService(store *fakeOrderStore, publisher *events.MockEventPublisher) *OrderService {
	return NewOrderService(
		store,
		&fakeAuthClient{known: map[string]bool{"cust-1": true}},
		publisher,
		testConfig(),
		zap.NewNop(),
	)
}

func checkoutRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		CustomerID:    "cust-1",
		CustomerName:  "Ayu",
		CustomerPhone: "0812000000",
		Items: []models.CartItem{
			{ID: "line-1", ProductID: "p1", ProductName: "Latte", Size: models.SizeMedium, Quantity: 3, Price: 30000},
		},
		PaymentMethod: models.PaymentMethodCash,
	}
}

func TestCreateOrder(t *testing.T) {
	store := newFakeOrderStore()
	publisher := events.NewMockEventPublisher()
	s := newTestOrderService(store, publisher)

	order, err := s.CreateOrder(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.ID == "" {
		t.Error("expected generated order ID")
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("expected status PENDING, got %s", order.Status)
	}
	if order.IsPaid {
		t.Error("new order must not be marked paid")
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order line, got %d", len(order.Items))
	}
	if order.Items[0].ProductID != "p1" || order.Items[0].Quantity != 3 {
		t.Errorf("cart line was not carried over: %+v", order.Items[0])
	}
	if order.Subtotal != 90000 || order.Tax != 9000 || order.Total != 109000 {
		t.Errorf("unexpected totals: subtotal=%v tax=%v total=%v", order.Subtotal, order.Tax, order.Total)
	}

	if len(publisher.Events) != 1 || publisher.Events[0].Type != events.EventTypeOrderCreated {
		t.Errorf("expected one order.created event, got %+v", publisher.Events)
	}
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	s := newTestOrderService(newFakeOrderStore(), events.NewMockEventPublisher())

	req := checkoutRequest()
	req.CustomerID = "cust-unknown"

	if _, err := s.CreateOrder(context.Background(), req); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for unknown customer, got %v", err)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	s := newTestOrderService(newFakeOrderStore(), events.NewMockEventPublisher())

	tests := []struct {
		name   string
		mutate func(*models.CreateOrderRequest)
	}{
		{"missing customer id", func(r *models.CreateOrderRequest) { r.CustomerID = "" }},
		{"blank customer name", func(r *models.CreateOrderRequest) { r.CustomerName = "  " }},
		{"missing phone", func(r *models.CreateOrderRequest) { r.CustomerPhone = "" }},
		{"no items", func(r *models.CreateOrderRequest) { r.Items = nil }},
		{"bad payment method", func(r *models.CreateOrderRequest) { r.PaymentMethod = "Barter" }},
		{"item with zero quantity", func(r *models.CreateOrderRequest) { r.Items[0].Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := checkoutRequest()
			tt.mutate(req)
			if _, err := s.CreateOrder(context.Background(), req); !apperrors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateOrderTruncatesNotes(t *testing.T) {
	store := newFakeOrderStore()
	s := newTestOrderService(store, events.NewMockEventPublisher())

	req := checkoutRequest()
	req.Notes = "  " + strings.Repeat("x", 2000)

	order, err := s.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if len(order.Notes) != 1000 {
		t.Errorf("expected notes capped at 1000 chars, got %d", len(order.Notes))
	}
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{models.OrderStatusPending, models.OrderStatusPreparing, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPreparing, models.OrderStatusReady, true},
		{models.OrderStatusReady, models.OrderStatusCompleted, true},

		{models.OrderStatusPending, models.OrderStatusReady, false},
		{models.OrderStatusPending, models.OrderStatusCompleted, false},
		{models.OrderStatusPreparing, models.OrderStatusPending, false},
		{models.OrderStatusPreparing, models.OrderStatusCancelled, false},
		{models.OrderStatusReady, models.OrderStatusPreparing, false},
		{models.OrderStatusCompleted, models.OrderStatusPending, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
	}

	for _, tt := range tests {
		name := string(tt.from) + "_to_" + string(tt.to)
		t.Run(name, func(t *testing.T) {
			store := newFakeOrderStore()
			s := newTestOrderService(store, events.NewMockEventPublisher())

			order, err := s.CreateOrder(context.Background(), checkoutRequest())
			if err != nil {
				t.Fatalf("CreateOrder: %v", err)
			}
			store.orders[order.ID].Status = tt.from

			_, err = s.UpdateOrderStatus(context.Background(), order.ID, &models.UpdateOrderStatusRequest{Status: tt.to})
			if tt.allowed && err != nil {
				t.Errorf("expected transition allowed, got %v", err)
			}
			if !tt.allowed && !apperrors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateOrderStatusPublishesEvent(t *testing.T) {
	store := newFakeOrderStore()
	publisher := events.NewMockEventPublisher()
	s := newTestOrderService(store, publisher)

	order, err := s.CreateOrder(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := s.UpdateOrderStatus(context.Background(), order.ID, &models.UpdateOrderStatusRequest{Status: models.OrderStatusPreparing}); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}

	if len(publisher.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(publisher.Events))
	}
	if publisher.Events[1].Type != events.EventTypeOrderStatusChanged {
		t.Errorf("expected order.status_changed, got %s", publisher.Events[1].Type)
	}
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	s := newTestOrderService(newFakeOrderStore(), events.NewMockEventPublisher())

	_, err := s.UpdateOrderStatus(context.Background(), "missing", &models.UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	if err != apperrors.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelOrder(t *testing.T) {
	store := newFakeOrderStore()
	publisher := events.NewMockEventPublisher()
	s := newTestOrderService(store, publisher)

	order, err := s.CreateOrder(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	cancelled, err := s.CancelOrder(context.Background(), order.ID, "changed my mind")
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if cancelled.Status != models.OrderStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", cancelled.Status)
	}

	if publisher.Events[len(publisher.Events)-1].Type != events.EventTypeOrderCancelled {
		t.Error("expected order.cancelled event")
	}
}

func TestCancelOrderOnlyWhilePending(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			store := newFakeOrderStore()
			s := newTestOrderService(store, events.NewMockEventPublisher())

			order, err := s.CreateOrder(context.Background(), checkoutRequest())
			if err != nil {
				t.Fatalf("CreateOrder: %v", err)
			}
			store.orders[order.ID].Status = status

			if _, err := s.CancelOrder(context.Background(), order.ID, ""); !apperrors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from    models.OrderStatus
		want    models.OrderStatus
		hasNext bool
	}{
		{models.OrderStatusPending, models.OrderStatusPreparing, true},
		{models.OrderStatusPreparing, models.OrderStatusReady, true},
		{models.OrderStatusReady, models.OrderStatusCompleted, true},
		{models.OrderStatusCompleted, "", false},
		{models.OrderStatusCancelled, "", false},
	}

	for _, tt := range tests {
		got, ok := NextStatus(tt.from)
		if got != tt.want || ok != tt.hasNext {
			t.Errorf("NextStatus(%s) = (%s, %v), want (%s, %v)", tt.from, got, ok, tt.want, tt.hasNext)
		}
	}
}
