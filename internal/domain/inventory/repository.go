package inventory

import (
	"context"

	"shopstock/internal/core/id"
)

// RecordRepository defines storage operations for per-product records.
type RecordRepository interface {
	// GetByProduct returns the record, or (nil, nil) when the product
	// has never been adjusted.
	GetByProduct(ctx context.Context, productID id.ID) (*Record, error)

	// GetByProductForUpdate returns the record with a row lock.
	// Must be called inside a transaction.
	GetByProductForUpdate(ctx context.Context, productID id.ID) (*Record, error)

	// Upsert creates or replaces the record, bumping UpdatedAt.
	// The default threshold applies only on create.
	Upsert(ctx context.Context, rec Record) error

	// List returns all records, optionally only those at or below
	// their threshold.
	List(ctx context.Context, lowStockOnly bool) ([]Record, error)
}

// VariantRepository defines storage operations for variant stock rows.
type VariantRepository interface {
	// ListByProduct returns all variant stock rows for a product.
	ListByProduct(ctx context.Context, productID id.ID) ([]VariantStock, error)

	// ListByProductForUpdate locks and returns the product's variant
	// rows. Must be called inside a transaction.
	ListByProductForUpdate(ctx context.Context, productID id.ID) ([]VariantStock, error)

	// GetByID returns a variant stock row, or (nil, nil) when absent.
	GetByID(ctx context.Context, variantID id.ID) (*VariantStock, error)

	// GetByIDForUpdate returns the row with a row lock.
	GetByIDForUpdate(ctx context.Context, variantID id.ID) (*VariantStock, error)

	// UpdateStock persists a variant's quantity and derived flag.
	UpdateStock(ctx context.Context, v VariantStock) error
}

// HistoryRepository defines the ledger contract: append-only writes,
// chronological reads.
type HistoryRepository interface {
	// Append writes one immutable ledger entry.
	Append(ctx context.Context, entry HistoryEntry) error

	// ListByProduct returns the product's ledger in chronological
	// order.
	ListByProduct(ctx context.Context, productID id.ID, limit, offset int) ([]HistoryEntry, error)
}
