package inventory

import (
	"context"
	"fmt"

	"shopstock/internal/core/id"
	"shopstock/internal/core/tx"
	"shopstock/pkg/logger"
)

// Line is one order line to reserve stock for.
type Line struct {
	ProductID id.ID
	Quantity  int64
	VariantID *id.ID
}

// LineStatus is the outcome of reserving a single line.
type LineStatus string

const (
	// LineApplied: the line's transaction committed.
	LineApplied LineStatus = "applied"
	// LineSkipped: the line was rejected before any datastore access.
	LineSkipped LineStatus = "skipped"
	// LineFailed: the line's transaction rolled back.
	LineFailed LineStatus = "failed"
)

// LineResult reports what happened to one line. Lines are not jointly
// atomic, so callers must inspect every result: partial application
// across an order is possible and is reported, not hidden.
type LineResult struct {
	Line            Line
	Status          LineStatus
	VariantResolved bool
	Err             error
}

// Reservation decrements stock as a side effect of order creation.
// Each line runs in its own transaction; a failing line never aborts
// its siblings.
type Reservation struct {
	records   RecordRepository
	variants  VariantRepository
	history   HistoryRepository
	txManager tx.Manager
	monitor   *Monitor
}

// NewReservation creates an order-fulfillment reservation service.
func NewReservation(
	records RecordRepository,
	variants VariantRepository,
	history HistoryRepository,
	txManager tx.Manager,
	monitor *Monitor,
) *Reservation {
	return &Reservation{
		records:   records,
		variants:  variants,
		history:   history,
		txManager: txManager,
		monitor:   monitor,
	}
}

// Reserve processes the order's lines one by one and returns a result
// per line, in input order.
func (r *Reservation) Reserve(ctx context.Context, orderID id.ID, lines []Line) []LineResult {
	results := make([]LineResult, 0, len(lines))

	for _, line := range lines {
		if id.IsNil(line.ProductID) || line.Quantity <= 0 {
			results = append(results, LineResult{
				Line:   line,
				Status: LineSkipped,
				Err:    fmt.Errorf("invalid line: product %s, quantity %d", line.ProductID, line.Quantity),
			})
			continue
		}

		result := r.reserveLine(ctx, orderID, line)
		results = append(results, result)

		if result.Status == LineApplied {
			r.monitor.Check(ctx, line.ProductID)
		}
	}

	return results
}

// reserveLine runs one line's stock decrement as a single transaction.
func (r *Reservation) reserveLine(ctx context.Context, orderID id.ID, line Line) LineResult {
	result := LineResult{Line: line}

	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		variant, err := r.resolveVariant(ctx, line)
		if err != nil {
			return err
		}

		reason := fmt.Sprintf("Order %s", orderID)
		if variant != nil {
			variant.StockQuantity = clampStock(variant.StockQuantity - line.Quantity)
			variant.Refresh()
			if err := r.variants.UpdateStock(ctx, *variant); err != nil {
				return fmt.Errorf("update variant %s: %w", variant.VariantID, err)
			}
			result.VariantResolved = true
			reason = fmt.Sprintf("%s (variant %s)", reason, variant.VariantID)
		}

		rec, err := r.records.GetByProductForUpdate(ctx, line.ProductID)
		if err != nil {
			return fmt.Errorf("lock record: %w", err)
		}
		var stock int64
		if rec != nil {
			stock = clampStock(rec.Stock - line.Quantity)
		} else {
			stock = clampStock(-line.Quantity)
		}
		if err := r.records.Upsert(ctx, Record{
			ProductID:      line.ProductID,
			Stock:          stock,
			StockThreshold: DefaultStockThreshold,
		}); err != nil {
			return fmt.Errorf("upsert record: %w", err)
		}

		entry := NewHistoryEntry(line.ProductID, -line.Quantity, reason)
		if variant != nil {
			entry = entry.WithVariant(variant.VariantID)
		}
		if err := r.history.Append(ctx, entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "order line reservation failed",
			"order_id", orderID,
			"product_id", line.ProductID,
			"quantity", line.Quantity,
			"error", err,
		)
		result.Status = LineFailed
		result.VariantResolved = false
		result.Err = err
		return result
	}

	result.Status = LineApplied
	return result
}

// resolveVariant returns the line's variant when it exists and belongs
// to the line's product. A missing or mismatched variant resolves to
// nil: the product-level decrement still applies, there is no fallback
// search across the product's other variants.
func (r *Reservation) resolveVariant(ctx context.Context, line Line) (*VariantStock, error) {
	if line.VariantID == nil {
		return nil, nil
	}
	variant, err := r.variants.GetByIDForUpdate(ctx, *line.VariantID)
	if err != nil {
		return nil, fmt.Errorf("get variant %s: %w", *line.VariantID, err)
	}
	if variant == nil {
		logger.Warn(ctx, "order line references unknown variant",
			"product_id", line.ProductID, "variant_id", *line.VariantID)
		return nil, nil
	}
	if variant.ProductID != line.ProductID {
		logger.Warn(ctx, "order line variant belongs to another product",
			"product_id", line.ProductID,
			"variant_id", variant.VariantID,
			"variant_product_id", variant.ProductID,
		)
		return nil, nil
	}
	return variant, nil
}
