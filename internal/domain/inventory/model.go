// Package inventory provides the stock-consistency engine: per-product
// and per-variant stock tracking, atomic adjustment, order-line
// reservation, and the append-only stock history ledger.
package inventory

import (
	"time"

	"shopstock/internal/core/id"
)

// DefaultStockThreshold is applied when a record is created without an
// explicit low-stock threshold.
const DefaultStockThreshold int64 = 5

// Record is the per-product aggregate stock figure.
// For a product with variants, Stock equals the sum of the variants'
// StockQuantity after every completed write.
type Record struct {
	ProductID      id.ID     `db:"product_id" json:"productId"`
	Stock          int64     `db:"stock" json:"stock"`
	StockThreshold int64     `db:"stock_threshold" json:"stockThreshold"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// IsLowStock reports whether the product is at or below its threshold.
// Always recomputed, never stored.
func (r Record) IsLowStock() bool {
	return r.Stock <= r.StockThreshold
}

// VariantStock is the stock state of a single product variant.
type VariantStock struct {
	VariantID     id.ID `db:"variant_id" json:"variantId"`
	ProductID     id.ID `db:"product_id" json:"productId"`
	StockQuantity int64 `db:"stock_quantity" json:"stockQuantity"`
	InStock       bool  `db:"in_stock" json:"inStock"`
}

// Refresh recomputes the derived InStock flag from StockQuantity.
// Must be called after every quantity change before persisting.
func (v *VariantStock) Refresh() {
	v.InStock = v.StockQuantity > 0
}

// HistoryEntry is one row of the append-only stock ledger.
// Entries are immutable once written; UUIDv7 ids and CreatedAt both
// order them chronologically.
type HistoryEntry struct {
	ID        id.ID     `db:"id" json:"id"`
	ProductID id.ID     `db:"product_id" json:"productId"`
	VariantID *id.ID    `db:"variant_id" json:"variantId,omitempty"`
	Change    int64     `db:"change" json:"change"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewHistoryEntry creates a ledger entry for a product-level change.
func NewHistoryEntry(productID id.ID, change int64, reason string) HistoryEntry {
	return HistoryEntry{
		ID:        id.New(),
		ProductID: productID,
		Change:    change,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
}

// WithVariant tags the entry with the variant it applied to.
func (e HistoryEntry) WithVariant(variantID id.ID) HistoryEntry {
	e.VariantID = &variantID
	return e
}

// clampStock floors a stock figure at zero. A negative delta may only
// drain stock, never drive it below zero.
func clampStock(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
