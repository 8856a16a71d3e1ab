// Package order_repo provides the PostgreSQL implementation of the
// order repository.
package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"shopstock/internal/core/id"
	"shopstock/internal/domain/order"
	"shopstock/internal/infrastructure/storage/postgres"
)

const (
	ordersTable     = "orders"
	orderLinesTable = "order_lines"
)

var (
	orderColumns = postgres.ExtractDBColumns[order.Order]()
	lineColumns  = postgres.ExtractDBColumns[order.Line]()
)

// OrderRepo implements order.Repository.
type OrderRepo struct {
	txm     *postgres.TxManager
	batch   *postgres.BatchExecutor
	builder squirrel.StatementBuilderType
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txm *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		txm:     txm,
		batch:   postgres.NewBatchExecutor(txm),
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the order header.
func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	q := r.builder.Insert(ordersTable).SetMap(postgres.StructToMap(o))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// SaveLines inserts the order's line items in one round-trip.
func (r *OrderRepo) SaveLines(ctx context.Context, orderID id.ID, lines []order.Line) error {
	if len(lines) == 0 {
		return nil
	}

	queries := make([]postgres.BatchQuery, 0, len(lines))
	for _, l := range lines {
		l.OrderID = orderID
		q := r.builder.Insert(orderLinesTable).SetMap(postgres.StructToMap(l))
		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		queries = append(queries, postgres.BatchQuery{SQL: sql, Args: args})
	}

	if err := r.batch.ExecuteBatch(ctx, queries); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// GetByID returns the order header or (nil, nil) when absent.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*order.Order, error) {
	q := r.builder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"id": orderID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var o order.Order
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &o, nil
}

// GetLines returns the order's line items.
func (r *OrderRepo) GetLines(ctx context.Context, orderID id.ID) ([]order.Line, error) {
	q := r.builder.Select(lineColumns...).
		From(orderLinesTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("line_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []order.Line
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}

	return lines, nil
}
