package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/apperrors"
	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

const cartKeyPrefix = "cart:"

// CartStore persists a customer's full cart line list as a single
// serialized document. Every mutation rewrites the whole list, so a
// load after a successful save always observes the saved state.
type CartStore interface {
	// Load returns the persisted cart for a customer. A missing or
	// corrupt document yields an empty cart, never an error.
	Load(ctx context.Context, customerID string) ([]models.CartItem, error)
	// Save atomically replaces the persisted cart.
	Save(ctx context.Context, customerID string, items []models.CartItem) error
}

// RedisCartStore implements CartStore on Redis.
type RedisCartStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCartStore creates a Redis-backed cart store.
func NewRedisCartStore(cfg config.RedisConfig, logger *zap.Logger) *RedisCartStore {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisCartStore{
		client: client,
		logger: logger,
	}
}

func (s *RedisCartStore) Load(ctx context.Context, customerID string) ([]models.CartItem, error) {
	key := cartKeyPrefix + customerID

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, apperrors.NewExternalError("cart store", "failed to load cart", err)
	}

	return s.decodeCart(customerID, data), nil
}

// decodeCart unmarshals a persisted cart document. A corrupt document
// recovers silently as an empty cart.
func (s *RedisCartStore) decodeCart(customerID string, data []byte) []models.CartItem {
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Discarding corrupt persisted cart",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return []models.CartItem{}
	}
	if items == nil {
		return []models.CartItem{}
	}
	return items
}

func (s *RedisCartStore) Save(ctx context.Context, customerID string, items []models.CartItem) error {
	key := cartKeyPrefix + customerID

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		s.logger.Error("Cart save error",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return apperrors.NewExternalError("cart store", "failed to save cart", err)
	}

	return nil
}

// Ping verifies the Redis connection.
func (s *RedisCartStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// InMemoryCartStore is a map-backed CartStore for tests and local
// development.
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]models.CartItem
}

func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{carts: make(map[string][]models.CartItem)}
}

func (s *InMemoryCartStore) Load(_ context.Context, customerID string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartItem, len(s.carts[customerID]))
	copy(items, s.carts[customerID])
	return items, nil
}

func (s *InMemoryCartStore) Save(_ context.Context, customerID string, items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make([]models.CartItem, len(items))
	copy(saved, items)
	s.carts[customerID] = saved
	return nil
}
