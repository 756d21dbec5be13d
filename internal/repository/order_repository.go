package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nuttaponsrpn/Kiki-POS/internal/database"
	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Enabled() bool
	ListWithItems(ctx context.Context) ([]*domain.Order, error)
	ListWithItemsInRange(ctx context.Context, start time.Time, end *time.Time) ([]*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	store *database.Client
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(store *database.Client) OrderRepository {
	return &orderRepository{store: store}
}

// Enabled reports whether the backing store client is configured
func (r *orderRepository) Enabled() bool {
	return r.store.Enabled()
}

// ListWithItems retrieves all orders newest first, each with its line items
// and the referenced product names for display
func (r *orderRepository) ListWithItems(ctx context.Context) ([]*domain.Order, error) {
	return r.queryOrders(ctx, "")
}

// ListWithItemsInRange retrieves orders created within [start, end]. A nil
// end leaves the range open on the right.
func (r *orderRepository) ListWithItemsInRange(ctx context.Context, start time.Time, end *time.Time) ([]*domain.Order, error) {
	if end != nil {
		return r.queryOrders(ctx, "WHERE o.created_at >= $1 AND o.created_at <= $2", start, *end)
	}
	return r.queryOrders(ctx, "WHERE o.created_at >= $1", start)
}

func (r *orderRepository) queryOrders(ctx context.Context, where string, args ...any) ([]*domain.Order, error) {
	if !r.store.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.total_amount, o.payment_method, o.created_at,
		       oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price_at_sale, oi.created_at,
		       p.name
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN products p ON p.id = oi.product_id
		%s
		ORDER BY o.created_at DESC, oi.created_at ASC
	`, where)

	rows, err := r.store.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	byID := map[uuid.UUID]*domain.Order{}

	for rows.Next() {
		var (
			order domain.Order
			// order_items columns are nullable because of the left join
			itemID      *uuid.UUID
			itemOrderID *uuid.UUID
			productID   *uuid.UUID
			quantity    *int
			priceAtSale *float64
			itemCreated *time.Time
			productName *string
		)

		err := rows.Scan(
			&order.ID,
			&order.TotalAmount,
			&order.PaymentMethod,
			&order.CreatedAt,
			&itemID,
			&itemOrderID,
			&productID,
			&quantity,
			&priceAtSale,
			&itemCreated,
			&productName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		existing, ok := byID[order.ID]
		if !ok {
			existing = &order
			existing.Items = []domain.OrderItem{}
			byID[order.ID] = existing
			orders = append(orders, existing)
		}

		if itemID != nil {
			existing.Items = append(existing.Items, domain.OrderItem{
				ID:          *itemID,
				OrderID:     *itemOrderID,
				ProductID:   productID,
				Quantity:    *quantity,
				PriceAtSale: *priceAtSale,
				ProductName: productName,
				CreatedAt:   *itemCreated,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// Create inserts an order row followed by its line items. The inserts are
// sequential and not wrapped in a transaction.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if !r.store.Enabled() {
		return nil
	}

	orderQuery := `
		INSERT INTO orders (id, total_amount, payment_method)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.store.DB().QueryRowContext(
		ctx,
		orderQuery,
		order.ID,
		order.TotalAmount,
		order.PaymentMethod,
	).Scan(&order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price_at_sale)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	for i := range order.Items {
		item := &order.Items[i]
		err := r.store.DB().QueryRowContext(
			ctx,
			itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.PriceAtSale,
		).Scan(&item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return nil
}

// Delete removes an order; line items cascade at the store
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if !r.store.Enabled() {
		return nil
	}

	query := `DELETE FROM orders WHERE id = $1`

	result, err := r.store.DB().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
