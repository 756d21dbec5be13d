package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a single line of an order. ProductID is nil when the
// referenced product has since been deleted; ProductName is populated from
// the products table for display and is nil in the same case.
type OrderItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	OrderID     uuid.UUID  `json:"order_id" db:"order_id"`
	ProductID   *uuid.UUID `json:"product_id" db:"product_id"`
	Quantity    int        `json:"quantity" db:"quantity"`
	PriceAtSale float64    `json:"price_at_sale" db:"price_at_sale"`
	ProductName *string    `json:"product_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Order is a completed sale with its line items
type Order struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	TotalAmount   float64     `json:"total_amount" db:"total_amount"`
	PaymentMethod string      `json:"payment_method" db:"payment_method"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	Items         []OrderItem `json:"order_items"`
}
