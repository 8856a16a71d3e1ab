package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopstock/internal/core/id"
)

func TestNew_GeneratesIDs(t *testing.T) {
	productID := id.New()
	o := New([]Line{
		{ProductID: productID, Quantity: 2},
		{ProductID: productID, Quantity: 1},
	})

	assert.False(t, id.IsNil(o.ID))
	require.Len(t, o.Lines, 2)
	for _, l := range o.Lines {
		assert.False(t, id.IsNil(l.LineID))
		assert.Equal(t, o.ID, l.OrderID)
	}
	assert.NotEqual(t, o.Lines[0].LineID, o.Lines[1].LineID)
}

func TestOrder_Validate(t *testing.T) {
	productID := id.New()

	tests := []struct {
		name    string
		lines   []Line
		wantErr bool
	}{
		{"valid single line", []Line{{ProductID: productID, Quantity: 1}}, false},
		{"no lines", nil, true},
		{"missing product", []Line{{Quantity: 1}}, true},
		{"zero quantity", []Line{{ProductID: productID, Quantity: 0}}, true},
		{"negative quantity", []Line{{ProductID: productID, Quantity: -2}}, true},
		{"one bad line fails the order", []Line{
			{ProductID: productID, Quantity: 1},
			{ProductID: productID, Quantity: 0},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New(tt.lines)
			err := o.Validate(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
