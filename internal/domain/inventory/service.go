package inventory

import (
	"context"
	"fmt"

	"shopstock/internal/core/apperror"
	"shopstock/internal/core/id"
	"shopstock/internal/core/tx"
	"shopstock/internal/domain/catalog/product"
	"shopstock/pkg/logger"
)

// DefaultAdjustmentReason is recorded when a manual adjustment arrives
// without an explicit reason.
const DefaultAdjustmentReason = "Manual adjustment"

// Service orchestrates manual and bulk stock adjustments.
//
// It is one of the two writers of records, variant stocks and the
// ledger (the other is Reservation). Every mutation runs as a single
// transaction; the low-stock check runs after commit so a notification
// failure can never roll back a stock change.
type Service struct {
	records   RecordRepository
	variants  VariantRepository
	history   HistoryRepository
	products  product.Repository
	txManager tx.Manager
	monitor   *Monitor
}

// NewService creates a new stock adjustment service.
func NewService(
	records RecordRepository,
	variants VariantRepository,
	history HistoryRepository,
	products product.Repository,
	txManager tx.Manager,
	monitor *Monitor,
) *Service {
	return &Service{
		records:   records,
		variants:  variants,
		history:   history,
		products:  products,
		txManager: txManager,
		monitor:   monitor,
	}
}

// Adjust applies a signed stock change to a product and returns the
// resulting record.
//
// When the product has variants, the change is distributed across them
// proportionally to their current stock and the aggregate is recomputed
// as the sum of the updated variants, so clamping can never make the
// aggregate drift from the variant total. Without variants the change
// applies directly to the record, clamped at zero.
//
// A zero change is accepted: it still appends a ledger entry, which is
// how manual audit corrections are recorded.
func (s *Service) Adjust(ctx context.Context, productID id.ID, stockChange int64, reason string) (*Record, error) {
	if id.IsNil(productID) {
		return nil, apperror.NewValidation("productId is required")
	}
	if reason == "" {
		reason = DefaultAdjustmentReason
	}

	var result *Record
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prod, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if prod == nil {
			return apperror.NewNotFound("product", productID.String())
		}

		variants, err := s.variants.ListByProductForUpdate(ctx, productID)
		if err != nil {
			return fmt.Errorf("lock variants: %w", err)
		}

		var aggregate int64
		if len(variants) > 0 {
			aggregate, err = s.applyToVariants(ctx, variants, stockChange)
			if err != nil {
				return err
			}
		} else {
			rec, err := s.records.GetByProductForUpdate(ctx, productID)
			if err != nil {
				return fmt.Errorf("lock record: %w", err)
			}
			var current int64
			if rec != nil {
				current = rec.Stock
			}
			aggregate = clampStock(current + stockChange)
		}

		if err := s.records.Upsert(ctx, Record{
			ProductID:      productID,
			Stock:          aggregate,
			StockThreshold: DefaultStockThreshold,
		}); err != nil {
			return fmt.Errorf("upsert record: %w", err)
		}

		if err := s.history.Append(ctx, NewHistoryEntry(productID, stockChange, reason)); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		if err := s.products.SetInStock(ctx, productID, aggregate > 0); err != nil {
			return fmt.Errorf("set product in-stock flag: %w", err)
		}

		result, err = s.records.GetByProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("reload record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock adjusted",
		"product_id", productID,
		"change", stockChange,
		"stock", result.Stock,
	)

	s.monitor.Check(ctx, productID)

	return result, nil
}

// applyToVariants distributes the change, writes the clamped variant
// stocks and returns the new aggregate.
func (s *Service) applyToVariants(ctx context.Context, variants []VariantStock, stockChange int64) (int64, error) {
	stocks := make([]int64, len(variants))
	for i, v := range variants {
		stocks[i] = v.StockQuantity
	}
	shares := Distribute(stockChange, stocks)

	var aggregate int64
	for i := range variants {
		variants[i].StockQuantity = clampStock(variants[i].StockQuantity + shares[i])
		variants[i].Refresh()
		if err := s.variants.UpdateStock(ctx, variants[i]); err != nil {
			return 0, fmt.Errorf("update variant %s: %w", variants[i].VariantID, err)
		}
		aggregate += variants[i].StockQuantity
	}
	return aggregate, nil
}

// Overview is the read-side view of a product's stock state.
type Overview struct {
	Product           *product.Product
	Record            Record
	Variants          []VariantStock
	TotalVariantStock int64
}

// IsLowStock is recomputed on every read, never stored.
func (o Overview) IsLowStock() bool {
	return o.Record.IsLowStock()
}

// Overview returns the stock state for one product.
// A product that was never adjusted reports zero stock and the default
// threshold.
func (s *Service) Overview(ctx context.Context, productID id.ID) (*Overview, error) {
	prod, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if prod == nil {
		return nil, apperror.NewNotFound("product", productID.String())
	}

	rec, err := s.records.GetByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if rec == nil {
		rec = &Record{ProductID: productID, StockThreshold: DefaultStockThreshold}
	}

	variants, err := s.variants.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}

	var total int64
	for _, v := range variants {
		total += v.StockQuantity
	}

	return &Overview{
		Product:           prod,
		Record:            *rec,
		Variants:          variants,
		TotalVariantStock: total,
	}, nil
}

// List returns the stock state of every tracked product, optionally
// restricted to those at or below their threshold.
func (s *Service) List(ctx context.Context, lowStockOnly bool) ([]Overview, error) {
	records, err := s.records.List(ctx, lowStockOnly)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	overviews := make([]Overview, 0, len(records))
	for _, rec := range records {
		variants, err := s.variants.ListByProduct(ctx, rec.ProductID)
		if err != nil {
			return nil, fmt.Errorf("list variants for %s: %w", rec.ProductID, err)
		}
		var total int64
		for _, v := range variants {
			total += v.StockQuantity
		}
		overviews = append(overviews, Overview{
			Record:            rec,
			Variants:          variants,
			TotalVariantStock: total,
		})
	}
	return overviews, nil
}

// History returns the product's ledger in chronological order.
func (s *Service) History(ctx context.Context, productID id.ID, limit, offset int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.history.ListByProduct(ctx, productID, limit, offset)
}
