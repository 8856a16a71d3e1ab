// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"shopstock/internal/domain/inventory"
	"shopstock/internal/domain/order"
	"shopstock/internal/infrastructure/http/v1/handlers"
	"shopstock/internal/infrastructure/http/v1/middleware"
	"shopstock/internal/infrastructure/storage/postgres"
	"shopstock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// InventoryService is the stock adjustment and read service.
	InventoryService *inventory.Service

	// OrderService creates orders and triggers reservation.
	OrderService *order.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	healthHandler.RegisterRoutes(router.Group("/health"))

	v1 := router.Group("/api/v1")
	{
		inventoryHandler := handlers.NewInventoryHandler(base, cfg.InventoryService)
		inventoryHandler.RegisterRoutes(v1.Group("/inventory"))

		orderHandler := handlers.NewOrderHandler(base, cfg.OrderService)
		orderHandler.RegisterRoutes(v1.Group("/orders"))
	}

	return router
}
