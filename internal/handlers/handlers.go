package handlers

import (
	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/events"
	"github.com/coffeehub/coffeehub-storefront-service/internal/repository"
	"github.com/coffeehub/coffeehub-storefront-service/internal/service"
)

// Handlers holds all HTTP handlers for the storefront service.
type Handlers struct {
	catalogService *service.CatalogService
	cartService    *service.CartService
	orderService   *service.OrderService
	sessions       *repository.SessionStore
	hub            *events.Hub
	config         *config.Config
	logger         *zap.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	catalogService *service.CatalogService,
	cartService *service.CartService,
	orderService *service.OrderService,
	sessions *repository.SessionStore,
	hub *events.Hub,
	cfg *config.Config,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		catalogService: catalogService,
		cartService:    cartService,
		orderService:   orderService,
		sessions:       sessions,
		hub:            hub,
		config:         cfg,
		logger:         logger,
	}
}
