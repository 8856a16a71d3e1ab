package product

import (
	"context"

	"shopstock/internal/core/id"
)

// Repository defines the catalog operations used by the stock engine.
type Repository interface {
	// GetByID returns the product, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// SetInStock persists the product-level availability flag.
	SetInStock(ctx context.Context, productID id.ID, inStock bool) error
}
