package handlers

import (
	"github.com/gin-gonic/gin"

	"shopstock/internal/core/apperror"
	"shopstock/internal/core/id"
	"shopstock/internal/domain/inventory"
	"shopstock/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles HTTP requests for the stock engine.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Adjust handles POST /inventory/adjust
func (h *InventoryHandler) Adjust(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	record, err := h.service.Adjust(ctx, productID, *req.StockChange, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	// Refresh the product and its variants for the response.
	overview, err := h.service.Overview(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AdjustStockResponse{
		Record:  dto.FromRecord(*record),
		Product: dto.FromProduct(overview.Product, overview.Variants),
	})
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	lowStockOnly := c.Query("lowStockOnly") == "true"

	overviews, err := h.service.List(ctx, lowStockOnly)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.InventoryOverviewResponse, len(overviews))
	for i, o := range overviews {
		items[i] = dto.FromOverview(o)
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Get handles GET /inventory/:productId
func (h *InventoryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	overview, err := h.service.Overview(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOverview(*overview))
}

// History handles GET /inventory/:productId/history
func (h *InventoryHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 100)
	offset := h.ParseIntQuery(c, "offset", 0)

	entries, err := h.service.History(ctx, productID, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.HistoryEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = dto.FromHistoryEntry(e)
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// RegisterRoutes registers inventory routes.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/adjust", h.Adjust)
	rg.GET("", h.List)
	rg.GET("/:productId", h.Get)
	rg.GET("/:productId/history", h.History)
}
