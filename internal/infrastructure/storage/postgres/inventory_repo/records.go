// Package inventory_repo provides PostgreSQL implementations for the
// stock engine repositories.
package inventory_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"shopstock/internal/core/id"
	"shopstock/internal/domain/inventory"
	"shopstock/internal/infrastructure/storage/postgres"
)

const recordsTable = "inventory_records"

var recordColumns = postgres.ExtractDBColumns[inventory.Record]()

// RecordRepo implements inventory.RecordRepository.
type RecordRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewRecordRepo creates a new inventory record repository.
func NewRecordRepo(txm *postgres.TxManager) *RecordRepo {
	return &RecordRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByProduct returns the record or (nil, nil) when absent.
func (r *RecordRepo) GetByProduct(ctx context.Context, productID id.ID) (*inventory.Record, error) {
	q := r.builder.Select(recordColumns...).
		From(recordsTable).
		Where(squirrel.Eq{"product_id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec inventory.Record
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get record: %w", err)
	}

	return &rec, nil
}

// GetByProductForUpdate returns the record with a pessimistic lock.
func (r *RecordRepo) GetByProductForUpdate(ctx context.Context, productID id.ID) (*inventory.Record, error) {
	sql := `
		SELECT product_id, stock, stock_threshold, updated_at
		FROM inventory_records
		WHERE product_id = $1
		FOR UPDATE
	`

	var rec inventory.Record
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &rec, sql, productID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get record for update: %w", err)
	}

	return &rec, nil
}

// Upsert creates or replaces the record's stock figure. The threshold
// is written only on create; an existing row keeps its configured
// threshold.
func (r *RecordRepo) Upsert(ctx context.Context, rec inventory.Record) error {
	rec.UpdatedAt = time.Now().UTC()
	q := r.builder.Insert(recordsTable).
		SetMap(postgres.StructToMap(rec)).
		Suffix(`ON CONFLICT (product_id) DO UPDATE
			SET stock = EXCLUDED.stock, updated_at = EXCLUDED.updated_at`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	return nil
}

// List returns all records, optionally only low-stock ones.
func (r *RecordRepo) List(ctx context.Context, lowStockOnly bool) ([]inventory.Record, error) {
	q := r.builder.Select(recordColumns...).
		From(recordsTable).
		OrderBy("product_id")

	if lowStockOnly {
		q = q.Where(squirrel.Expr("stock <= stock_threshold"))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []inventory.Record
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return records, nil
}
