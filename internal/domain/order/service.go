package order

import (
	"context"
	"fmt"
	"time"

	"shopstock/internal/core/id"
	"shopstock/internal/core/sequence"
	"shopstock/internal/core/tx"
	"shopstock/internal/domain/inventory"
	"shopstock/pkg/logger"
)

// NumberPrefix is the sequence prefix for order numbers.
const NumberPrefix = "ORD"

// Service creates orders and triggers stock reservation.
type Service struct {
	repo        Repository
	reservation *inventory.Reservation
	txManager   tx.Manager
	numbers     sequence.Generator
	numberCfg   sequence.Config
}

// NewService creates a new order service.
func NewService(repo Repository, reservation *inventory.Reservation, txManager tx.Manager, numbers sequence.Generator) *Service {
	return &Service{
		repo:        repo,
		reservation: reservation,
		txManager:   txManager,
		numbers:     numbers,
		numberCfg:   sequence.DefaultConfig(NumberPrefix),
	}
}

// Result is a created order together with the per-line reservation
// outcomes. Reservation runs per line after the order is persisted, so
// the order can exist with some lines unreserved; callers decide
// whether to compensate.
type Result struct {
	Order        *Order
	Reservations []inventory.LineResult
}

// Create persists the order, then reserves stock line by line.
func (s *Service) Create(ctx context.Context, o *Order) (*Result, error) {
	if err := o.Validate(ctx); err != nil {
		return nil, err
	}

	// The number is issued outside the transaction: order numbers may
	// have gaps, they must never hold a sequence row lock across the
	// insert.
	number, err := s.numbers.Next(ctx, s.numberCfg, time.Now())
	if err != nil {
		return nil, fmt.Errorf("issue order number: %w", err)
	}
	o.Number = number

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := s.repo.SaveLines(ctx, o.ID, o.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	lines := make([]inventory.Line, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = inventory.Line{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			VariantID: l.VariantID,
		}
	}
	results := s.reservation.Reserve(ctx, o.ID, lines)

	applied := 0
	for _, r := range results {
		if r.Status == inventory.LineApplied {
			applied++
		}
	}
	logger.Info(ctx, "order created",
		"order_id", o.ID,
		"number", o.Number,
		"lines", len(o.Lines),
		"reserved", applied,
	)

	return &Result{Order: o, Reservations: results}, nil
}

// GetByID returns an order with its lines.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	lines, err := s.repo.GetLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	o.Lines = lines
	return o, nil
}
