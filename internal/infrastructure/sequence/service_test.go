package sequence

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	coreseq "shopstock/internal/core/sequence"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences UPSERT: a strict call bumps
// the value by one, a range reservation bumps it by the increment arg.
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	queries      int
}

func (m *mockQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	m.queries++
	return &mockRow{val: m.currentValue}
}

func TestNext_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := coreseq.DefaultConfig("ORD")
	year := time.Now().Format("2006")

	num, err := svc.Next(ctx, cfg, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("ORD-%s-00001", year); num != want {
		t.Errorf("expected %s, got %s", want, num)
	}

	num, err = svc.Next(ctx, cfg, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("ORD-%s-00002", year); num != want {
		t.Errorf("expected %s, got %s", want, num)
	}
}

func TestNext_CachedReservesRanges(t *testing.T) {
	q := &mockQuerier{}
	svc := NewCached(q, 10)
	ctx := context.Background()
	cfg := coreseq.DefaultConfig("ORD")

	// Ten numbers from one reservation.
	for i := 1; i <= 10; i++ {
		num, err := svc.Next(ctx, cfg, time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := ParseNumber(num); got != int64(i) {
			t.Errorf("expected sequence value %d, got %d (%s)", i, got, num)
		}
	}
	if q.queries != 1 {
		t.Errorf("expected 1 range reservation, got %d queries", q.queries)
	}

	// The eleventh number triggers a second reservation.
	num, err := svc.Next(ctx, cfg, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ParseNumber(num); got != 11 {
		t.Errorf("expected sequence value 11, got %d (%s)", got, num)
	}
	if q.queries != 2 {
		t.Errorf("expected 2 range reservations, got %d queries", q.queries)
	}
}

func TestNext_KeyResetPeriods(t *testing.T) {
	period := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		reset string
		want  string
	}{
		{"year", "ORD_2026"},
		{"month", "ORD_2026_08"},
		{"never", "ORD"},
	}

	for _, tt := range tests {
		cfg := coreseq.Config{Prefix: "ORD", ResetPeriod: tt.reset}
		if got := buildKey(cfg, period); got != tt.want {
			t.Errorf("reset %q: expected key %s, got %s", tt.reset, tt.want, got)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		formatted string
		want      int64
	}{
		{"ORD-2026-00042", 42},
		{"ORD-00007", 7},
		{"garbage", -1},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.formatted); got != tt.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tt.formatted, got, tt.want)
		}
	}
}
