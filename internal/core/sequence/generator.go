// Package sequence provides the domain contract for human-readable
// document numbering. Implementations live in the infrastructure layer.
package sequence

import (
	"context"
	"time"
)

// Generator issues sequential document numbers.
// Pattern: PREFIX-YEAR-XXXXX (e.g., ORD-2026-00001).
type Generator interface {
	Next(ctx context.Context, cfg Config, period time.Time) (string, error)
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "ORD")
	Prefix string

	// IncludeYear adds the year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults: yearly reset, 5-digit pad.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}
