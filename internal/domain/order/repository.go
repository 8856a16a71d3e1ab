package order

import (
	"context"

	"shopstock/internal/core/id"
)

// Repository defines storage operations for orders.
type Repository interface {
	// Create inserts the order header.
	Create(ctx context.Context, o *Order) error

	// SaveLines inserts the order's line items.
	SaveLines(ctx context.Context, orderID id.ID, lines []Line) error

	// GetByID returns the order without lines, or (nil, nil) when absent.
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// GetLines returns the order's line items.
	GetLines(ctx context.Context, orderID id.ID) ([]Line, error)
}
