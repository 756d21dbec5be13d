package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog
type Product struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Stock     int       `json:"stock" db:"stock"`
	Category  *string   `json:"category" db:"category"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	Barcode   *string   `json:"barcode" db:"barcode"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProductUpdate carries the fields of a partial product update.
// Nil fields are left untouched by the store.
type ProductUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
	Category *string  `json:"category,omitempty"`
	ImageURL *string  `json:"image_url,omitempty"`
	Barcode  *string  `json:"barcode,omitempty"`
}

// CartItem pairs a product with the quantity currently in the cart
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
