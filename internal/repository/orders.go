package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/apperrors"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// OrderRepository is the Postgres-backed order store. Line items are
// stored denormalized in a JSON column; orders are append-only apart
// from status transitions.
type OrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates an order store over db.
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{db: db, logger: logger}
}

const orderColumns = `id, customer_id, customer_name, customer_phone, items,
		subtotal, delivery_fee, tax, total, payment_method, is_paid, status, created_at, notes`

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, customer_name, customer_phone, items,
		                    subtotal, delivery_fee, tax, total, payment_method, is_paid, status, created_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, order.ID, order.CustomerID, order.CustomerName, order.CustomerPhone, itemsJSON,
		order.Subtotal, order.DeliveryFee, order.Tax, order.Total,
		order.PaymentMethod, order.IsPaid, order.Status, order.Timestamp, order.Notes,
	)
	if err != nil {
		r.logger.Error("Failed to insert order",
			zap.String("order_id", order.ID),
			zap.String("customer_id", order.CustomerID),
			zap.Error(err),
		)
		return apperrors.NewExternalError("order store", "failed to create order", err)
	}

	return nil
}

// GetByID fetches one order.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewExternalError("order store", "failed to fetch order", err)
	}
	return order, nil
}

// ListAll returns every order, newest first.
func (r *OrderRepository) ListAll(ctx context.Context) ([]*models.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
	`)
}

// ListByCustomer returns a customer's orders, newest first.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*models.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
}

// ListPending returns PENDING orders oldest first, the order the
// kitchen should work through them.
func (r *OrderRepository) ListPending(ctx context.Context) ([]*models.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		ORDER BY created_at ASC
	`, models.OrderStatusPending)
}

// UpdateStatus moves an order to a new status and returns the updated
// row. Transition legality is enforced by the service layer.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, notes string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1,
		    notes = CASE WHEN $2 = '' THEN notes ELSE $2 END,
		    updated_at = NOW()
		WHERE id = $3
		RETURNING `+orderColumns+`
	`, status, notes, id)

	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewExternalError("order store", "failed to update order status", err)
	}
	return order, nil
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("order store", "failed to list orders", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var itemsJSON []byte

	err := row.Scan(
		&order.ID, &order.CustomerID, &order.CustomerName, &order.CustomerPhone,
		&itemsJSON, &order.Subtotal, &order.DeliveryFee, &order.Tax, &order.Total,
		&order.PaymentMethod, &order.IsPaid, &order.Status, &order.Timestamp, &order.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, err
	}
	return &order, nil
}
