// Package main is the entry point for the shopstock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"shopstock/internal/config"
	"shopstock/internal/domain/inventory"
	"shopstock/internal/domain/order"
	v1 "shopstock/internal/infrastructure/http/v1"
	"shopstock/internal/infrastructure/notify"
	"shopstock/internal/infrastructure/sequence"
	"shopstock/internal/infrastructure/storage/postgres"
	"shopstock/internal/infrastructure/storage/postgres/catalog_repo"
	"shopstock/internal/infrastructure/storage/postgres/inventory_repo"
	"shopstock/internal/infrastructure/storage/postgres/order_repo"
	"shopstock/pkg/logger"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting shopstock server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	recordRepo := inventory_repo.NewRecordRepo(txManager)
	variantRepo := inventory_repo.NewVariantRepo(txManager)
	historyRepo := inventory_repo.NewHistoryRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	orderRepo := order_repo.NewOrderRepo(txManager)

	// --- Notification sink ---
	var notifier inventory.Notifier = notify.NewLogSink()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warnw("redis unavailable, falling back to log sink", "error", err)
		} else {
			notifier = notify.NewRedisSink(redisClient, cfg.Inventory.LowStockChannel)
			log.Infow("redis notification sink enabled", "channel", cfg.Inventory.LowStockChannel)
		}
	}

	// --- Services ---
	monitor := inventory.NewMonitor(recordRepo, productRepo, notifier)
	inventoryService := inventory.NewService(recordRepo, variantRepo, historyRepo, productRepo, txManager, monitor)
	reservation := inventory.NewReservation(recordRepo, variantRepo, historyRepo, txManager, monitor)

	// Order numbers tolerate gaps, so the cached strategy is fine here.
	orderNumbers := sequence.NewCached(pool, sequence.DefaultRangeSize)
	orderService := order.NewService(orderRepo, reservation, txManager, orderNumbers)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		InventoryService: inventoryService,
		OrderService:     orderService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.GetReadTimeout(),
		WriteTimeout: cfg.Server.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
