package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopstock/internal/core/apperror"
	"shopstock/internal/core/id"
)

func TestService_Adjust_NoVariants(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 10, 5)

	rec, err := f.service.Adjust(context.Background(), productID, -6, "sale")
	require.NoError(t, err)

	assert.Equal(t, int64(4), rec.Stock)
	assert.True(t, rec.IsLowStock())

	entries := f.history.byProduct(productID)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(-6), entries[0].Change)
	assert.Equal(t, "sale", entries[0].Reason)
	assert.Nil(t, entries[0].VariantID)

	assert.True(t, f.products.products[productID].InStock)
}

func TestService_Adjust_DistributesAcrossVariants(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Plain Tee", 20, 5)
	stocked := f.addVariant(productID, 20)
	empty := f.addVariant(productID, 0)

	rec, err := f.service.Adjust(context.Background(), productID, 10, "restock")
	require.NoError(t, err)

	// The empty variant's share is round(10*0/20) = 0; the stocked one
	// takes the whole delta.
	assert.Equal(t, int64(30), f.variants.variants[stocked].StockQuantity)
	assert.Equal(t, int64(0), f.variants.variants[empty].StockQuantity)
	assert.Equal(t, int64(30), rec.Stock)
	assert.False(t, f.variants.variants[empty].InStock)
	assert.True(t, f.variants.variants[stocked].InStock)
}

func TestService_Adjust_ClampsAtZero(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Linen Apron", 10, 5)

	rec, err := f.service.Adjust(context.Background(), productID, -100, "correction")
	require.NoError(t, err)

	assert.Equal(t, int64(0), rec.Stock)
	assert.False(t, f.products.products[productID].InStock)

	// The ledger keeps the requested change, not the clamped effect.
	entries := f.history.byProduct(productID)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(-100), entries[0].Change)
}

func TestService_Adjust_AggregateEqualsVariantSum(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Enamel Mug", 4, 5)
	f.addVariant(productID, 3)
	f.addVariant(productID, 1)

	// Over-draining clamps individual variants; the aggregate must still
	// equal the sum of what actually remains.
	rec, err := f.service.Adjust(context.Background(), productID, -10, "writeoff")
	require.NoError(t, err)

	var sum int64
	for _, v := range f.variants.variants {
		require.GreaterOrEqual(t, v.StockQuantity, int64(0))
		sum += v.StockQuantity
	}
	assert.Equal(t, sum, rec.Stock)
}

func TestService_Adjust_ZeroChangeStillLedgered(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 10, 5)

	rec, err := f.service.Adjust(context.Background(), productID, 0, "")
	require.NoError(t, err)

	assert.Equal(t, int64(10), rec.Stock)
	entries := f.history.byProduct(productID)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(0), entries[0].Change)
	assert.Equal(t, DefaultAdjustmentReason, entries[0].Reason)
}

func TestService_Adjust_CreatesRecordWithDefaultThreshold(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 0, 0) // product only, no record yet

	rec, err := f.service.Adjust(context.Background(), productID, 3, "initial stock")
	require.NoError(t, err)

	assert.Equal(t, int64(3), rec.Stock)
	assert.Equal(t, DefaultStockThreshold, rec.StockThreshold)
}

func TestService_Adjust_ExistingThresholdPreserved(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 10, 8)

	rec, err := f.service.Adjust(context.Background(), productID, 1, "restock")
	require.NoError(t, err)

	assert.Equal(t, int64(8), rec.StockThreshold)
}

func TestService_Adjust_ProductNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.Adjust(context.Background(), id.New(), 5, "restock")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.history.entries)
}

func TestService_Adjust_NilProductRejectedBeforeTx(t *testing.T) {
	f := newFixture()

	_, err := f.service.Adjust(context.Background(), id.Nil(), 5, "restock")
	require.Error(t, err)
	assert.Equal(t, 0, f.txm.calls)
}

func TestService_Adjust_HistoryFailureFailsAdjustment(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 10, 5)
	f.history.appendErr = errors.New("write failed")

	_, err := f.service.Adjust(context.Background(), productID, -6, "sale")
	require.Error(t, err)
	assert.Empty(t, f.notifier.sent)
}

func TestService_Adjust_NotifiesAfterCommit(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 6, 5)

	_, err := f.service.Adjust(context.Background(), productID, -2, "sale")
	require.NoError(t, err)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notification{"Canvas Tote", 4, 5}, f.notifier.sent[0])
}

func TestService_Overview(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Plain Tee", 32, 5)
	f.addVariant(productID, 20)
	f.addVariant(productID, 12)

	ov, err := f.service.Overview(context.Background(), productID)
	require.NoError(t, err)

	assert.Equal(t, int64(32), ov.Record.Stock)
	assert.Len(t, ov.Variants, 2)
	assert.Equal(t, int64(32), ov.TotalVariantStock)
	assert.False(t, ov.IsLowStock())
}

func TestService_Overview_UntrackedProductDefaults(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 0, 0) // no record

	ov, err := f.service.Overview(context.Background(), productID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), ov.Record.Stock)
	assert.Equal(t, DefaultStockThreshold, ov.Record.StockThreshold)
	assert.True(t, ov.IsLowStock())
}

func TestService_Overview_UnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.service.Overview(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_List_LowStockOnly(t *testing.T) {
	f := newFixture()
	low := f.addProduct("Enamel Mug", 3, 5)
	f.addProduct("Plain Tee", 40, 5)

	all, err := f.service.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.service.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, low, filtered[0].Record.ProductID)
	assert.True(t, filtered[0].IsLowStock())
}

func TestService_History_ChronologicalOrder(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Canvas Tote", 10, 5)

	_, err := f.service.Adjust(context.Background(), productID, 5, "restock")
	require.NoError(t, err)
	_, err = f.service.Adjust(context.Background(), productID, -3, "sale")
	require.NoError(t, err)

	entries, err := f.service.History(context.Background(), productID, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(5), entries[0].Change)
	assert.Equal(t, int64(-3), entries[1].Change)
}
