// Package notify provides low-stock notification sinks.
package notify

import (
	"context"

	"shopstock/internal/domain/inventory"
	"shopstock/pkg/logger"
)

// Compile-time check.
var _ inventory.Notifier = (*LogSink)(nil)

// LogSink writes low-stock notifications to the structured log.
// Used in development and as a fallback when no Redis is configured.
type LogSink struct{}

// NewLogSink creates a log-based notification sink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// NotifyLowStock logs the notification. It never fails.
func (s *LogSink) NotifyLowStock(ctx context.Context, productName string, currentStock, threshold int64) error {
	logger.Warn(ctx, "low stock",
		"product", productName,
		"stock", currentStock,
		"threshold", threshold,
	)
	return nil
}
