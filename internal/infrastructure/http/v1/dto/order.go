package dto

import (
	"time"

	"shopstock/internal/domain/inventory"
	"shopstock/internal/domain/order"
)

// --- Requests ---

// CreateOrderRequest is the order-placement input.
type CreateOrderRequest struct {
	Lines []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineRequest is one line item in a new order.
type OrderLineRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0"`
	VariantID *string `json:"variantId"`
}

// --- Responses ---

// OrderLineResponse represents a stored order line.
type OrderLineResponse struct {
	LineID    string `json:"lineId"`
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
	VariantID string `json:"variantId,omitempty"`
}

// FromOrderLine converts a domain line to a response DTO.
func FromOrderLine(l order.Line) OrderLineResponse {
	resp := OrderLineResponse{
		LineID:    l.LineID.String(),
		ProductID: l.ProductID.String(),
		Quantity:  l.Quantity,
	}
	if l.VariantID != nil {
		resp.VariantID = l.VariantID.String()
	}
	return resp
}

// ReservationResultResponse reports the stock outcome of one line.
type ReservationResultResponse struct {
	ProductID       string `json:"productId"`
	Quantity        int64  `json:"quantity"`
	VariantID       string `json:"variantId,omitempty"`
	Status          string `json:"status"`
	VariantResolved bool   `json:"variantResolved"`
	Error           string `json:"error,omitempty"`
}

// FromLineResult converts a reservation result to a response DTO.
func FromLineResult(r inventory.LineResult) ReservationResultResponse {
	resp := ReservationResultResponse{
		ProductID:       r.Line.ProductID.String(),
		Quantity:        r.Line.Quantity,
		Status:          string(r.Status),
		VariantResolved: r.VariantResolved,
	}
	if r.Line.VariantID != nil {
		resp.VariantID = r.Line.VariantID.String()
	}
	if r.Err != nil {
		resp.Error = r.Err.Error()
	}
	return resp
}

// OrderResponse is the order-creation output: the stored order plus
// the per-line reservation outcomes. Partial reservation is visible,
// never hidden behind a single success flag.
type OrderResponse struct {
	ID           string                      `json:"id"`
	Number       string                      `json:"number"`
	CreatedAt    time.Time                   `json:"createdAt"`
	Lines        []OrderLineResponse         `json:"lines"`
	Reservations []ReservationResultResponse `json:"reservations,omitempty"`
}

// FromOrderResult converts an order creation result to a response DTO.
func FromOrderResult(res *order.Result) OrderResponse {
	lines := make([]OrderLineResponse, len(res.Order.Lines))
	for i, l := range res.Order.Lines {
		lines[i] = FromOrderLine(l)
	}
	reservations := make([]ReservationResultResponse, len(res.Reservations))
	for i, r := range res.Reservations {
		reservations[i] = FromLineResult(r)
	}
	return OrderResponse{
		ID:           res.Order.ID.String(),
		Number:       res.Order.Number,
		CreatedAt:    res.Order.CreatedAt,
		Lines:        lines,
		Reservations: reservations,
	}
}

// FromOrder converts a stored order to a response DTO.
func FromOrder(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = FromOrderLine(l)
	}
	return OrderResponse{
		ID:        o.ID.String(),
		Number:    o.Number,
		CreatedAt: o.CreatedAt,
		Lines:     lines,
	}
}
