// Package order provides the thin order-placement surface that drives
// stock reservation. Checkout, pricing and payment live elsewhere;
// this package only records the order and decrements stock.
package order

import (
	"context"
	"time"

	"shopstock/internal/core/apperror"
	"shopstock/internal/core/id"
)

// Order is a placed order with its line items.
type Order struct {
	ID        id.ID     `db:"id" json:"id"`
	Number    string    `db:"number" json:"number"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one order line item.
type Line struct {
	LineID    id.ID  `db:"line_id" json:"lineId"`
	OrderID   id.ID  `db:"order_id" json:"orderId"`
	ProductID id.ID  `db:"product_id" json:"productId"`
	Quantity  int64  `db:"quantity" json:"quantity"`
	VariantID *id.ID `db:"variant_id" json:"variantId,omitempty"`
}

// New creates an order with generated ids.
func New(lines []Line) *Order {
	o := &Order{
		ID:        id.New(),
		CreatedAt: time.Now().UTC(),
		Lines:     make([]Line, len(lines)),
	}
	for i, l := range lines {
		l.LineID = id.New()
		l.OrderID = o.ID
		o.Lines[i] = l
	}
	return o
}

// Validate checks the order before any datastore access.
func (o *Order) Validate(_ context.Context) error {
	if len(o.Lines) == 0 {
		return apperror.NewValidation("order must have at least one line")
	}
	for i, l := range o.Lines {
		if id.IsNil(l.ProductID) {
			return apperror.NewValidation("productId is required").WithDetail("line", i)
		}
		if l.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").WithDetail("line", i)
		}
	}
	return nil
}
