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

const historyTable = "stock_history"

var historyColumns = postgres.ExtractDBColumns[inventory.HistoryEntry]()

// HistoryRepo implements inventory.HistoryRepository.
// The table is append-only; there is no update or delete path.
type HistoryRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewHistoryRepo creates a new stock history repository.
func NewHistoryRepo(txm *postgres.TxManager) *HistoryRepo {
	return &HistoryRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Append writes one ledger entry.
func (r *HistoryRepo) Append(ctx context.Context, entry inventory.HistoryEntry) error {
	q := r.builder.Insert(historyTable).SetMap(postgres.StructToMap(entry))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	return nil
}

// ListByProduct returns the ledger in chronological order.
func (r *HistoryRepo) ListByProduct(ctx context.Context, productID id.ID, limit, offset int) ([]inventory.HistoryEntry, error) {
	q := r.builder.Select(historyColumns...).
		From(historyTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at", "id")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []inventory.HistoryEntry
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return entries, nil
}
