package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/clients"
	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/events"
	"github.com/coffeehub/coffeehub-storefront-service/internal/handlers"
	"github.com/coffeehub/coffeehub-storefront-service/internal/logging"
	"github.com/coffeehub/coffeehub-storefront-service/internal/repository"
	"github.com/coffeehub/coffeehub-storefront-service/internal/server"
	"github.com/coffeehub/coffeehub-storefront-service/internal/service"
	"github.com/coffeehub/coffeehub-storefront-service/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}, "storefront-service")
	defer logger.Sync()

	logger.Info("Starting storefront-service", zap.Int("port", cfg.Server.Port))

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	imageStore, err := storage.NewImageStore(cfg.Storage.ImageDir, logger)
	if err != nil {
		logger.Fatal("Failed to init image store", zap.Error(err))
	}

	productRepo := repository.NewProductRepository(db, logger)
	orderRepo := repository.NewOrderRepository(db, logger)
	cartStore := repository.NewRedisCartStore(cfg.Redis, logger)
	sessionStore := repository.NewSessionStore(cfg.Redis, logger)

	authClient := clients.NewHTTPAuthClient(cfg.AuthService, logger)

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	catalogService := service.NewCatalogService(productRepo, imageStore, logger)
	cartService := service.NewCartService(cartStore, cfg.Pricing, logger)
	orderService := service.NewOrderService(orderRepo, authClient, eventPublisher, cfg, logger)

	hub := events.NewHub()

	h := handlers.NewHandlers(catalogService, cartService, orderService, sessionStore, hub, cfg, logger)

	srv := server.NewServer(cfg, h, logger)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	var eventConsumer *events.KafkaConsumer
	if cfg.Features.EnableOrderStreams {
		eventConsumer = events.NewKafkaConsumer(cfg.Kafka, hub, logger)
		go func() {
			if err := eventConsumer.Start(context.Background()); err != nil {
				logger.Error("Event consumer failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if eventConsumer != nil {
		eventConsumer.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
	)

	return db, nil
}
