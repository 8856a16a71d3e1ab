package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"shopstock/internal/core/id"
	"shopstock/internal/domain/inventory"
	"shopstock/internal/infrastructure/storage/postgres"
)

const variantsTable = "variant_stocks"

var variantColumns = postgres.ExtractDBColumns[inventory.VariantStock]()

// VariantRepo implements inventory.VariantRepository.
type VariantRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewVariantRepo creates a new variant stock repository.
func NewVariantRepo(txm *postgres.TxManager) *VariantRepo {
	return &VariantRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListByProduct returns the product's variant stock rows.
func (r *VariantRepo) ListByProduct(ctx context.Context, productID id.ID) ([]inventory.VariantStock, error) {
	q := r.builder.Select(variantColumns...).
		From(variantsTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("variant_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var variants []inventory.VariantStock
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &variants, sql, args...); err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}

	return variants, nil
}

// ListByProductForUpdate locks and returns the product's variant rows.
// Deterministic ordering avoids lock-order deadlocks between
// concurrent writers of the same product.
func (r *VariantRepo) ListByProductForUpdate(ctx context.Context, productID id.ID) ([]inventory.VariantStock, error) {
	sql := `
		SELECT variant_id, product_id, stock_quantity, in_stock
		FROM variant_stocks
		WHERE product_id = $1
		ORDER BY variant_id
		FOR UPDATE
	`

	var variants []inventory.VariantStock
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &variants, sql, productID); err != nil {
		return nil, fmt.Errorf("list variants for update: %w", err)
	}

	return variants, nil
}

// GetByID returns a variant stock row or (nil, nil) when absent.
func (r *VariantRepo) GetByID(ctx context.Context, variantID id.ID) (*inventory.VariantStock, error) {
	q := r.builder.Select(variantColumns...).
		From(variantsTable).
		Where(squirrel.Eq{"variant_id": variantID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var v inventory.VariantStock
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &v, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}

	return &v, nil
}

// GetByIDForUpdate returns the row with a pessimistic lock.
func (r *VariantRepo) GetByIDForUpdate(ctx context.Context, variantID id.ID) (*inventory.VariantStock, error) {
	sql := `
		SELECT variant_id, product_id, stock_quantity, in_stock
		FROM variant_stocks
		WHERE variant_id = $1
		FOR UPDATE
	`

	var v inventory.VariantStock
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &v, sql, variantID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant for update: %w", err)
	}

	return &v, nil
}

// UpdateStock persists a variant's quantity and derived flag.
func (r *VariantRepo) UpdateStock(ctx context.Context, v inventory.VariantStock) error {
	q := r.builder.Update(variantsTable).
		Set("stock_quantity", v.StockQuantity).
		Set("in_stock", v.InStock).
		Where(squirrel.Eq{"variant_id": v.VariantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("variant %s not found", v.VariantID)
	}

	return nil
}
