package handlers

import (
	"github.com/gin-gonic/gin"

	"shopstock/internal/core/apperror"
	"shopstock/internal/core/id"
	"shopstock/internal/domain/order"
	"shopstock/internal/infrastructure/http/v1/dto"
)

// OrderHandler handles HTTP requests for order placement.
type OrderHandler struct {
	*BaseHandler
	service *order.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *order.Service) *OrderHandler {
	return &OrderHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lines := make([]order.Line, len(req.Lines))
	for i, l := range req.Lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format").WithDetail("line", i))
			return
		}
		line := order.Line{ProductID: productID, Quantity: l.Quantity}
		if l.VariantID != nil && *l.VariantID != "" {
			variantID, err := id.Parse(*l.VariantID)
			if err != nil {
				h.Error(c, apperror.NewValidation("invalid variantId format").WithDetail("line", i))
				return
			}
			line.VariantID = &variantID
		}
		lines[i] = line
	}

	result, err := h.service.Create(ctx, order.New(lines))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromOrderResult(result))
}

// Get handles GET /orders/:orderId
func (h *OrderHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("orderId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid orderId format"))
		return
	}

	o, err := h.service.GetByID(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if o == nil {
		h.Error(c, apperror.NewNotFound("order", orderID.String()))
		return
	}

	h.OK(c, dto.FromOrder(o))
}

// RegisterRoutes registers order routes.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:orderId", h.Get)
}
