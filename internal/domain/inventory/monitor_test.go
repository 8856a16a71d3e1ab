package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopstock/internal/core/id"
)

func TestMonitor_Check(t *testing.T) {
	tests := []struct {
		name       string
		stock      int64
		threshold  int64
		wantNotify bool
	}{
		{"below threshold", 4, 5, true},
		{"exactly at threshold", 5, 5, true},
		{"single unit left", 1, 5, true},
		{"above threshold", 6, 5, false},
		{"fully drained", 0, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			productID := f.addProduct("Canvas Tote", tt.stock, tt.threshold)

			f.monitor.Check(context.Background(), productID)

			if tt.wantNotify {
				require.Len(t, f.notifier.sent, 1)
				assert.Equal(t, notification{"Canvas Tote", tt.stock, tt.threshold}, f.notifier.sent[0])
			} else {
				assert.Empty(t, f.notifier.sent)
			}
		})
	}
}

func TestMonitor_Check_UntrackedProductIsSilent(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 0, 0) // no record

	f.monitor.Check(context.Background(), productID)

	assert.Empty(t, f.notifier.sent)
}

func TestMonitor_Check_SinkFailureSwallowed(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 3, 5)
	f.notifier.sendErr = errors.New("broker down")

	assert.NotPanics(t, func() {
		f.monitor.Check(context.Background(), productID)
	})
}

func TestMonitor_Check_ReadFailureSwallowed(t *testing.T) {
	f := newFixture()
	f.records.getErr = errors.New("connection reset")

	assert.NotPanics(t, func() {
		f.monitor.Check(context.Background(), id.New())
	})
	assert.Empty(t, f.notifier.sent)
}
