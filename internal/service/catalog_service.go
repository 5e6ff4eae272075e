package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/metrics"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
	"github.com/coffeehub/coffeehub-storefront-service/internal/repository"
	"github.com/coffeehub/coffeehub-storefront-service/internal/storage"
)

// CatalogService exposes the product catalog: filtered browse views
// for customers and CRUD plus image management for admins.
type CatalogService struct {
	products *repository.ProductRepository
	images   *storage.ImageStore
	logger   *zap.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(products *repository.ProductRepository, images *storage.ImageStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		images:   images,
		logger:   logger,
	}
}

// Browse fetches the catalog snapshot and runs the filter pipeline
// over it. The pipeline recomputes fully on every call.
func (s *CatalogService) Browse(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	metrics.CatalogFilterRuns.Inc()
	return ApplyFilters(products, filter), nil
}

// Get fetches one product.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Search returns products whose name starts with the given text.
func (s *CatalogService) Search(ctx context.Context, text string) ([]models.Product, error) {
	return s.products.SearchByName(ctx, text)
}

// Add creates a product.
func (s *CatalogService) Add(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := ValidateCreateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.products.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product added",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("category", product.Category),
	)
	return product, nil
}

// Update replaces a product's fields.
func (s *CatalogService) Update(ctx context.Context, id string, req *models.CreateProductRequest) (*models.Product, error) {
	if err := ValidateCreateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.products.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id))
	return product, nil
}

// Delete removes a product and best-effort deletes its stored image.
// Image cleanup failure never blocks the delete.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.images.Delete(product.ImageURL); err != nil {
		s.logger.Warn("Failed to delete product image",
			zap.String("product_id", id),
			zap.String("path", product.ImageURL),
			zap.Error(err),
		)
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

// AttachImage stores uploaded image bytes for a product and records
// the resulting path on the product.
func (s *CatalogService) AttachImage(ctx context.Context, id string, data []byte) (string, error) {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return "", err
	}

	path, err := s.images.Save(data, id)
	if err != nil {
		return "", err
	}

	if err := s.products.SetImageURL(ctx, id, path); err != nil {
		return "", err
	}
	return path, nil
}
