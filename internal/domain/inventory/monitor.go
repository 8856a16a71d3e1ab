package inventory

import (
	"context"

	"shopstock/internal/core/id"
	"shopstock/internal/domain/catalog/product"
	"shopstock/pkg/logger"
)

// Notifier is the external low-stock notification sink.
// Implementations live in infrastructure (log sink, Redis publisher).
type Notifier interface {
	NotifyLowStock(ctx context.Context, productName string, currentStock, threshold int64) error
}

// Monitor evaluates the low-stock predicate after stock mutations.
//
// It keeps no state and is safe to call redundantly. Any failure,
// whether a read error or a sink error, is logged and swallowed: the
// stock mutation that triggered the check has already committed and
// must never be reported as failed because of a notification.
type Monitor struct {
	records  RecordRepository
	products product.Repository
	notifier Notifier
}

// NewMonitor creates a low-stock monitor.
func NewMonitor(records RecordRepository, products product.Repository, notifier Notifier) *Monitor {
	return &Monitor{
		records:  records,
		products: products,
		notifier: notifier,
	}
}

// Check notifies the sink iff 0 < stock <= threshold. A product that
// has run fully dry does not notify; the in-stock flag already covers
// that state.
func (m *Monitor) Check(ctx context.Context, productID id.ID) {
	rec, err := m.records.GetByProduct(ctx, productID)
	if err != nil {
		logger.Warn(ctx, "low-stock check: read record failed",
			"product_id", productID, "error", err)
		return
	}
	if rec == nil || rec.Stock <= 0 || rec.Stock > rec.StockThreshold {
		return
	}

	prod, err := m.products.GetByID(ctx, productID)
	if err != nil || prod == nil {
		logger.Warn(ctx, "low-stock check: read product failed",
			"product_id", productID, "error", err)
		return
	}

	if err := m.notifier.NotifyLowStock(ctx, prod.Name, rec.Stock, rec.StockThreshold); err != nil {
		logger.Warn(ctx, "low-stock notification failed",
			"product_id", productID,
			"product", prod.Name,
			"stock", rec.Stock,
			"error", err,
		)
	}
}
