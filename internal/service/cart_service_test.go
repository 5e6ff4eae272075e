package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/apperrors"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
	"github.com/coffeehub/coffeehub-storefront-service/internal/repository"
)

func newTestCartService() *CartService {
	return NewCartService(repository.NewInMemoryCartStore(), testPricing, zap.NewNop())
}

func addRequest(productID, size string, quantity int, price float64) *models.AddCartItemRequest {
	return &models.AddCartItemRequest{
		ProductID:   productID,
		ProductName: "Latte",
		Size:        size,
		Quantity:    quantity,
		Price:       price,
	}
}

func TestAddItemMergesSameProductAndSize(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	if _, err := s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 1, 30000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	items, err := s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 2, 30000))
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", items[0].Quantity)
	}
}

func TestAddItemDifferentSizeIsSeparateLine(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeSmall, 1, 25000))
	items, err := s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeLarge, 1, 35000))
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].ID == items[1].ID {
		t.Error("expected distinct line IDs")
	}
}

func TestAddItemValidation(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.AddCartItemRequest
	}{
		{"missing product id", addRequest("", models.SizeMedium, 1, 30000)},
		{"unknown size", addRequest("p1", "Venti", 1, 30000)},
		{"zero quantity", addRequest("p1", models.SizeMedium, 0, 30000)},
		{"negative price", addRequest("p1", models.SizeMedium, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddItem(ctx, "cust-1", tt.req); !apperrors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRemoveItemDropsEverySizeOfProduct(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeSmall, 1, 25000))
	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeLarge, 1, 35000))
	s.AddItem(ctx, "cust-1", addRequest("p2", models.SizeMedium, 1, 30000))

	items, err := s.RemoveItem(ctx, "cust-1", "p1")
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Errorf("expected only p2 to remain, got %+v", items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 2, 30000))

	items, err := s.UpdateQuantity(ctx, "cust-1", "p1", 5)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestUpdateQuantityBelowOneIsNoOp(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 2, 30000))

	for _, quantity := range []int{0, -1} {
		items, err := s.UpdateQuantity(ctx, "cust-1", "p1", quantity)
		if err != nil {
			t.Fatalf("UpdateQuantity(%d): %v", quantity, err)
		}
		if len(items) != 1 || items[0].Quantity != 2 {
			t.Errorf("UpdateQuantity(%d) changed the cart: %+v", quantity, items)
		}
	}
}

func TestUpdateQuantityUnknownProductLeavesCartIntact(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 2, 30000))

	items, err := s.UpdateQuantity(ctx, "cust-1", "missing", 7)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if items[0].Quantity != 2 {
		t.Errorf("expected untouched quantity 2, got %d", items[0].Quantity)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 2, 30000))

	if err := s.Clear(ctx, "cust-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	count, err := s.ItemCount(ctx, "cust-1")
	if err != nil {
		t.Fatalf("ItemCount: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0 after clear, got %d", count)
	}
}

func TestItemCountSumsQuantities(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 2, 30000))
	s.AddItem(ctx, "cust-1", addRequest("p2", models.SizeLarge, 3, 35000))

	count, err := s.ItemCount(ctx, "cust-1")
	if err != nil {
		t.Fatalf("ItemCount: %v", err)
	}
	if count != 5 {
		t.Errorf("expected count 5, got %d", count)
	}
}

func TestCartsAreIsolatedPerCustomer(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 1, 30000))

	count, err := s.ItemCount(ctx, "cust-2")
	if err != nil {
		t.Fatalf("ItemCount: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty cart for other customer, got %d", count)
	}
}

func TestSummaryDerivesPricing(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 3, 30000))

	summary, err := s.Summary(ctx, "cust-1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", summary.ItemCount)
	}
	if summary.Pricing.Subtotal != 90000 {
		t.Errorf("Subtotal = %v, want 90000", summary.Pricing.Subtotal)
	}
	if summary.Pricing.Total != 109000 {
		t.Errorf("Total = %v, want 109000", summary.Pricing.Total)
	}
}

func TestWatchEmitsSnapshotThenMutations(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 1, 30000))

	ch, err := s.Watch(ctx, "cust-1")
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer s.Unwatch("cust-1", ch)

	initial := <-ch
	if len(initial) != 1 {
		t.Fatalf("expected initial snapshot with 1 line, got %d", len(initial))
	}

	s.AddItem(ctx, "cust-1", addRequest("p2", models.SizeSmall, 1, 25000))

	next := <-ch
	if len(next) != 2 {
		t.Errorf("expected emission with 2 lines, got %d", len(next))
	}
}

func TestWatchEmissionReflectsPersistedState(t *testing.T) {
	store := repository.NewInMemoryCartStore()
	s := NewCartService(store, testPricing, zap.NewNop())
	ctx := context.Background()

	ch, err := s.Watch(ctx, "cust-1")
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer s.Unwatch("cust-1", ch)
	<-ch

	s.AddItem(ctx, "cust-1", addRequest("p1", models.SizeMedium, 1, 30000))
	emitted := <-ch

	persisted, err := store.Load(ctx, "cust-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(emitted) != len(persisted) {
		t.Errorf("emission has %d lines, store has %d", len(emitted), len(persisted))
	}
}

func TestUnwatchClosesChannel(t *testing.T) {
	s := newTestCartService()
	ctx := context.Background()

	ch, err := s.Watch(ctx, "cust-1")
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	<-ch

	s.Unwatch("cust-1", ch)

	if _, ok := <-ch; ok {
		t.Error("expected channel closed after Unwatch")
	}
}
