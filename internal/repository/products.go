package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/apperrors"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// ProductRepository is the Postgres-backed catalog store.
type ProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a catalog store over db.
func NewProductRepository(db *sql.DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger}
}

const productColumns = `id, name, description, price, image_url, category, stock, is_available, created_at, rating, extra`

// List returns the full catalog snapshot, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, apperrors.NewExternalError("catalog store", "failed to list products", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByID fetches one product.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewExternalError("catalog store", "failed to fetch product", err)
	}
	return p, nil
}

// Create inserts a new product and returns it with its generated id.
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	id := uuid.NewString()

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price, image_url, category, stock, is_available, created_at, rating, extra)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), $9, $10)
		RETURNING `+productColumns+`
	`, id, req.Name, req.Description, req.Price, req.ImageURL, req.Category,
		req.Stock, req.IsAvailable, req.Rating, req.Extra,
	)

	product, err := scanProduct(row)
	if err != nil {
		r.logger.Error("Failed to insert product", zap.String("name", req.Name), zap.Error(err))
		return nil, apperrors.NewExternalError("catalog store", "failed to create product", err)
	}

	return product, nil
}

// Update replaces the mutable fields of a product.
func (r *ProductRepository) Update(ctx context.Context, id string, req *models.CreateProductRequest) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, image_url = $4,
		    category = $5, stock = $6, is_available = $7, rating = $8, extra = $9
		WHERE id = $10
		RETURNING `+productColumns+`
	`, req.Name, req.Description, req.Price, req.ImageURL, req.Category,
		req.Stock, req.IsAvailable, req.Rating, req.Extra, id,
	)

	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewExternalError("catalog store", "failed to update product", err)
	}

	return product, nil
}

// SetImageURL points a product at its stored image.
func (r *ProductRepository) SetImageURL(ctx context.Context, id, imageURL string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products SET image_url = $1 WHERE id = $2
	`, imageURL, id)
	if err != nil {
		return apperrors.NewExternalError("catalog store", "failed to set product image", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewExternalError("catalog store", "failed to delete product", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SearchByName returns products whose name starts with prefix, ordered
// by name.
func (r *ProductRepository) SearchByName(ctx context.Context, prefix string) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE name ILIKE $1 || '%'
		ORDER BY name
	`, prefix)
	if err != nil {
		return nil, apperrors.NewExternalError("catalog store", "failed to search products", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var rating sql.NullFloat64
	var extra sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.Category, &p.Stock, &p.IsAvailable, &p.CreatedAt,
		&rating, &extra,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		p.Rating = &rating.Float64
	}
	if extra.Valid {
		p.Extra = extra.String
	}
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
