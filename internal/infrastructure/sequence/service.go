// Package sequence provides the PostgreSQL implementation of
// core/sequence.Generator.
package sequence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	coreseq "shopstock/internal/core/sequence"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Strategy defines the number generation strategy.
type Strategy int

const (
	// StrategyStrict uses UPSERT ... RETURNING for every number.
	// Guarantees sequential numbers without gaps.
	StrategyStrict Strategy = iota

	// StrategyCached allocates ranges of numbers in memory.
	// Much faster, but may leave gaps if the application restarts.
	// Suitable for order numbers, which carry no gap-free guarantee.
	StrategyCached
)

// DefaultRangeSize is how many numbers a cached range reserves at once.
const DefaultRangeSize int64 = 50

type cachedRange struct {
	current int64
	max     int64
}

// Service issues document numbers backed by the sys_sequences table.
type Service struct {
	querier   Querier
	strategy  Strategy
	rangeSize int64

	cacheMu sync.Mutex
	ranges  map[string]*cachedRange
}

var _ coreseq.Generator = (*Service)(nil)

// New creates a strict generator.
func New(querier Querier) *Service {
	return &Service{
		querier:   querier,
		strategy:  StrategyStrict,
		rangeSize: DefaultRangeSize,
		ranges:    make(map[string]*cachedRange),
	}
}

// NewCached creates a range-caching generator.
func NewCached(querier Querier, rangeSize int64) *Service {
	if rangeSize <= 0 {
		rangeSize = DefaultRangeSize
	}
	return &Service{
		querier:   querier,
		strategy:  StrategyCached,
		rangeSize: rangeSize,
		ranges:    make(map[string]*cachedRange),
	}
}

// Next generates the next document number for the config's sequence.
func (s *Service) Next(ctx context.Context, cfg coreseq.Config, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("sequence service is not initialized")
	}

	key := buildKey(cfg, period)

	var num int64
	var err error
	switch s.strategy {
	case StrategyCached:
		num, err = s.nextCached(ctx, key)
	default:
		num, err = s.nextStrict(ctx, key)
	}
	if err != nil {
		return "", err
	}

	return formatNumber(cfg, period, num), nil
}

// nextStrict fetches the next number directly from the DB using
// UPSERT + RETURNING.
func (s *Service) nextStrict(ctx context.Context, key string) (int64, error) {
	var num int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("strict next: %w", err)
	}
	return num, nil
}

// nextCached serves numbers from an in-memory range, reserving a new
// range from the DB when the current one runs out.
func (s *Service) nextCached(ctx context.Context, key string) (int64, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	rng, exists := s.ranges[key]
	if !exists {
		rng = &cachedRange{}
		s.ranges[key] = rng
	}

	if rng.current >= rng.max {
		var newMax int64
		err := s.querier.QueryRow(ctx, `
			INSERT INTO sys_sequences (key, current_val)
			VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + $2
			RETURNING current_val
		`, key, s.rangeSize).Scan(&newMax)
		if err != nil {
			return 0, fmt.Errorf("reserve range: %w", err)
		}

		// current_val tracks the last reserved number, so this
		// reservation owns (newMax - rangeSize, newMax].
		rng.current = newMax - s.rangeSize
		rng.max = newMax
	}

	rng.current++
	return rng.current, nil
}

// buildKey creates the sequence key based on config and period.
func buildKey(cfg coreseq.Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

// formatNumber creates the final number string.
func formatNumber(cfg coreseq.Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts the numeric part from a formatted number.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	var num int64
	patterns := []string{
		"%*[^-]-%*d-%d",
		"%*[^-]-%d",
	}

	for _, pattern := range patterns {
		if _, err := fmt.Sscanf(formatted, pattern, &num); err == nil {
			return num
		}
	}

	return -1
}
