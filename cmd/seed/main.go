// Package main provides a CLI tool for seeding development fixtures:
// a handful of products and variants the engine can be exercised with.
// The engine itself never creates catalog rows.
package main

import (
	"context"
	"fmt"
	"os"

	"shopstock/internal/core/id"
	"shopstock/internal/infrastructure/storage/postgres"
	"shopstock/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedProducts(ctx, postgres.NewTxManager(pool), log); err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	log.Info("seeding completed successfully")
}

type seedProduct struct {
	name     string
	variants []int64 // initial stock per variant; empty means no variants
	stock    int64   // initial stock for products without variants
}

var variantColumns = []string{"variant_id", "product_id", "stock_quantity", "in_stock"}

func seedProducts(ctx context.Context, txm *postgres.TxManager, log *logger.Logger) error {
	products := []seedProduct{
		{name: "Plain Tee", variants: []int64{20, 0, 12}},
		{name: "Canvas Tote", stock: 10},
		{name: "Enamel Mug", variants: []int64{5, 5}},
		{name: "Linen Apron", stock: 0},
	}

	inserter := postgres.NewBatchInserter(txm)

	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := txm.GetQuerier(ctx)
		var variantRows [][]any

		for _, p := range products {
			productID := id.New()
			stock := p.stock + sum(p.variants)

			_, err := querier.Exec(ctx,
				`INSERT INTO products (id, name, in_stock) VALUES ($1, $2, $3)`,
				productID, p.name, stock > 0,
			)
			if err != nil {
				return fmt.Errorf("insert product %q: %w", p.name, err)
			}

			for _, variantStock := range p.variants {
				variantRows = append(variantRows,
					[]any{id.New(), productID, variantStock, variantStock > 0})
			}

			_, err = querier.Exec(ctx,
				`INSERT INTO inventory_records (product_id, stock, stock_threshold, updated_at)
				 VALUES ($1, $2, 5, now())`,
				productID, stock,
			)
			if err != nil {
				return fmt.Errorf("insert record for %q: %w", p.name, err)
			}

			log.Infow("seeded product", "name", p.name, "id", productID, "stock", stock)
		}

		if len(variantRows) > 0 {
			if _, err := inserter.CopyFromSlice(ctx, "variant_stocks", variantColumns, variantRows); err != nil {
				return fmt.Errorf("insert variants: %w", err)
			}
		}

		return nil
	})
}

func sum(vs []int64) int64 {
	var total int64
	for _, v := range vs {
		total += v
	}
	return total
}
