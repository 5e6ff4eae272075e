package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/metrics"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
	"github.com/coffeehub/coffeehub-storefront-service/internal/repository"
)

// watchBuffer bounds how many emissions a slow subscriber can lag
// behind before updates are dropped for it.
const watchBuffer = 16

// CartService owns per-customer cart state. Line identity is
// (productId, size): adding an existing pair merges quantities.
// Removal keys on productId alone and drops every size of that
// product; the asymmetry is inherited from the source system and is
// kept intact rather than silently corrected.
//
// Every mutation persists the full list first and only then emits it
// to watchers, so a read racing an emission always sees durable state.
type CartService struct {
	store   repository.CartStore
	pricing config.PricingConfig
	logger  *zap.Logger

	mu       sync.Mutex
	watchers map[string][]chan []models.CartItem
}

// NewCartService creates a cart service over the given store.
func NewCartService(store repository.CartStore, pricing config.PricingConfig, logger *zap.Logger) *CartService {
	return &CartService{
		store:    store,
		pricing:  pricing,
		logger:   logger,
		watchers: make(map[string][]chan []models.CartItem),
	}
}

// AddItem adds a line to the customer's cart. If a line with the same
// (productId, size) exists its quantity is incremented by the request
// quantity; otherwise a new line with a fresh id is appended.
func (s *CartService) AddItem(ctx context.Context, customerID string, req *models.AddCartItemRequest) ([]models.CartItem, error) {
	if err := ValidateAddCartItemRequest(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i, existing := range items {
		if existing.ProductID == req.ProductID && existing.Size == req.Size {
			items[i].Quantity = existing.Quantity + req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{
			ID:           uuid.NewString(),
			ProductID:    req.ProductID,
			ProductName:  req.ProductName,
			ProductImage: req.ProductImage,
			Size:         req.Size,
			Quantity:     req.Quantity,
			Price:        req.Price,
		})
	}

	if err := s.persistAndEmit(ctx, customerID, items); err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("add").Inc()
	s.logger.Info("Cart item added",
		zap.String("customer_id", customerID),
		zap.String("product_id", req.ProductID),
		zap.String("size", req.Size),
		zap.Bool("merged", merged),
	)

	return items, nil
}

// RemoveItem removes every line whose productId matches, regardless of
// size.
func (s *CartService) RemoveItem(ctx context.Context, customerID, productID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.persistAndEmit(ctx, customerID, kept); err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("remove").Inc()
	s.logger.Info("Cart item removed",
		zap.String("customer_id", customerID),
		zap.String("product_id", productID),
	)

	return kept, nil
}

// UpdateQuantity sets the quantity of the first line matching
// productID. Quantities below 1 are a no-op: the persisted cart is
// left untouched and returned as-is.
func (s *CartService) UpdateQuantity(ctx context.Context, customerID, productID string, quantity int) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		return items, nil
	}

	for i, item := range items {
		if item.ProductID == productID {
			items[i].Quantity = quantity
			if err := s.persistAndEmit(ctx, customerID, items); err != nil {
				return nil, err
			}
			metrics.CartMutations.WithLabelValues("update_quantity").Inc()
			break
		}
	}

	return items, nil
}

// Clear empties the customer's cart. Carts are only ever cleared
// explicitly, by the checkout path or the customer.
func (s *CartService) Clear(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistAndEmit(ctx, customerID, []models.CartItem{}); err != nil {
		return err
	}

	metrics.CartMutations.WithLabelValues("clear").Inc()
	s.logger.Info("Cart cleared", zap.String("customer_id", customerID))
	return nil
}

// Items returns the customer's current cart lines.
func (s *CartService) Items(ctx context.Context, customerID string) ([]models.CartItem, error) {
	return s.store.Load(ctx, customerID)
}

// ItemCount sums quantities across all lines.
func (s *CartService) ItemCount(ctx context.Context, customerID string) (int, error) {
	items, err := s.store.Load(ctx, customerID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// Summary returns the cart lines together with the derived price
// breakdown. Recomputed from scratch on every call.
func (s *CartService) Summary(ctx context.Context, customerID string) (*models.CartSummary, error) {
	items, err := s.store.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return &models.CartSummary{
		Items:     items,
		ItemCount: count,
		Pricing:   CalculateBreakdown(items, s.pricing),
	}, nil
}

// Watch subscribes to cart emissions for a customer. The current list
// is delivered first, then the full list after every mutation. Cancel
// with Unwatch.
func (s *CartService) Watch(ctx context.Context, customerID string) (<-chan []models.CartItem, error) {
	items, err := s.store.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	ch := make(chan []models.CartItem, watchBuffer)
	ch <- items

	s.mu.Lock()
	s.watchers[customerID] = append(s.watchers[customerID], ch)
	s.mu.Unlock()

	return ch, nil
}

// Unwatch removes a subscription created by Watch and closes its
// channel.
func (s *CartService) Unwatch(customerID string, ch <-chan []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.watchers[customerID]
	for i, sub := range subs {
		if sub == ch {
			s.watchers[customerID] = append(subs[:i], subs[i+1:]...)
			close(sub)
			break
		}
	}
	if len(s.watchers[customerID]) == 0 {
		delete(s.watchers, customerID)
	}
}

// persistAndEmit saves the list, then fans it out to watchers. Callers
// hold s.mu, so mutations persist and emit strictly in event order.
func (s *CartService) persistAndEmit(ctx context.Context, customerID string, items []models.CartItem) error {
	if err := s.store.Save(ctx, customerID, items); err != nil {
		return err
	}

	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)

	for _, ch := range s.watchers[customerID] {
		select {
		case ch <- snapshot:
		default:
			s.logger.Warn("Dropping cart emission for slow watcher",
				zap.String("customer_id", customerID),
			)
		}
	}
	return nil
}
