// Package storage holds admin-uploaded product images on local disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ImageStore writes product images under a single root directory,
// one file per product. Saving a new image for a product replaces the
// old one.
type ImageStore struct {
	root   string
	logger *zap.Logger
}

// NewImageStore creates the store, making the root directory if
// needed.
func NewImageStore(root string, logger *zap.Logger) (*ImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}
	return &ImageStore{root: root, logger: logger}, nil
}

// Save writes the image bytes for a product and returns the stored
// path.
func (s *ImageStore) Save(data []byte, productID string) (string, error) {
	path := filepath.Join(s.root, "product_"+sanitizeKey(productID)+".jpg")

	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("Failed to write product image",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Info("Product image saved",
		zap.String("product_id", productID),
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)
	return path, nil
}

// Delete removes a stored image. A missing file is not an error;
// image cleanup must never block product operations.
func (s *ImageStore) Delete(path string) error {
	if path == "" {
		return nil
	}
	if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.root)) {
		return fmt.Errorf("image path %q is outside the store", path)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitizeKey keeps product IDs filesystem-safe.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
}
