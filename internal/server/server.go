package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/handlers"
)

// Server wires the HTTP surface: routes, middleware and lifecycle.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	logger   *zap.Logger
	http     *http.Server
}

// NewServer builds the router and registers all routes.
func NewServer(cfg *config.Config, h *handlers.Handlers, logger *zap.Logger) *Server {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		logger:   logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", s.handlers.ListProducts)
			products.GET("/search", s.handlers.SearchProducts)
			products.GET("/:id", s.handlers.GetProduct)
			products.POST("", s.handlers.CreateProduct)
			products.PUT("/:id", s.handlers.UpdateProduct)
			products.DELETE("/:id", s.handlers.DeleteProduct)
			products.POST("/:id/image", s.handlers.UploadProductImage)
		}

		customers := v1.Group("/customers/:id")
		{
			customers.GET("/cart", s.handlers.GetCart)
			customers.GET("/cart/count", s.handlers.GetCartCount)
			customers.GET("/cart/stream", s.handlers.StreamCart)
			customers.POST("/cart/items", s.handlers.AddCartItem)
			customers.PUT("/cart/items", s.handlers.UpdateCartQuantity)
			customers.DELETE("/cart/items/:productId", s.handlers.RemoveCartItem)
			customers.DELETE("/cart", s.handlers.ClearCart)
			customers.POST("/checkout", s.handlers.Checkout)
			customers.GET("/orders", s.handlers.ListCustomerOrders)
			customers.GET("/streams/orders", s.handlers.StreamCustomerOrders)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", s.handlers.CreateOrder)
			orders.GET("", s.handlers.ListOrders)
			orders.GET("/:id", s.handlers.GetOrder)
			orders.PATCH("/:id/status", s.handlers.UpdateOrderStatus)
			orders.POST("/:id/advance", s.handlers.AdvanceOrder)
			orders.POST("/:id/cancel", s.handlers.CancelOrder)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.PUT("/:userId", s.handlers.SaveSession)
			sessions.GET("/:userId", s.handlers.GetSession)
			sessions.DELETE("/:userId", s.handlers.ClearSession)
		}

		v1.GET("/streams/orders", s.handlers.StreamOrders)
	}
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: 0, // SSE endpoints hold the connection open
	}

	s.logger.Info("Starting server", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
