// Package catalog_repo provides PostgreSQL implementations for the
// catalog surface the stock engine depends on.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"shopstock/internal/core/id"
	"shopstock/internal/domain/catalog/product"
	"shopstock/internal/infrastructure/storage/postgres"
)

const productsTable = "products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID returns the product or (nil, nil) when it does not exist.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.builder.Select("id", "name", "in_stock").
		From(productsTable).
		Where(squirrel.Eq{"id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}

// SetInStock persists the product-level availability flag.
func (r *ProductRepo) SetInStock(ctx context.Context, productID id.ID, inStock bool) error {
	q := r.builder.Update(productsTable).
		Set("in_stock", inStock).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set in_stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", productID)
	}

	return nil
}
