package repository

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

func TestDecodeCart(t *testing.T) {
	store := &RedisCartStore{logger: zap.NewNop()}

	valid, _ := json.Marshal([]models.CartItem{
		{ID: "line-1", ProductID: "p1", Size: models.SizeMedium, Quantity: 2, Price: 30000},
	})

	tests := []struct {
		name string
		data []byte
		want int
	}{
		{"valid document", valid, 1},
		{"garbage bytes", []byte("{not json"), 0},
		{"wrong shape", []byte(`{"items": 3}`), 0},
		{"json null", []byte("null"), 0},
		{"empty array", []byte("[]"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := store.decodeCart("cust-1", tt.data)
			if items == nil {
				t.Fatal("decodeCart returned nil, want empty cart")
			}
			if len(items) != tt.want {
				t.Errorf("decodeCart returned %d lines, want %d", len(items), tt.want)
			}
		})
	}
}

func TestDecodeCartPreservesLines(t *testing.T) {
	store := &RedisCartStore{logger: zap.NewNop()}

	data, _ := json.Marshal([]models.CartItem{
		{ID: "line-1", ProductID: "p1", ProductName: "Latte", Size: models.SizeLarge, Quantity: 3, Price: 35000},
	})

	items := store.decodeCart("cust-1", data)
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].ProductID != "p1" || items[0].Quantity != 3 || items[0].Size != models.SizeLarge {
		t.Errorf("line fields lost in decode: %+v", items[0])
	}
}
