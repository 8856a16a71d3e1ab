package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopstock/internal/core/id"
	"shopstock/internal/core/sequence"
	"shopstock/internal/domain/catalog/product"
	"shopstock/internal/domain/inventory"
)

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockOrderRepo struct {
	orders    map[id.ID]*Order
	lines     map[id.ID][]Line
	createErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders: make(map[id.ID]*Order),
		lines:  make(map[id.ID][]Line),
	}
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *o
	cp.Lines = nil
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) SaveLines(_ context.Context, orderID id.ID, lines []Line) error {
	m.lines[orderID] = append([]Line(nil), lines...)
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, orderID id.ID) (*Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) GetLines(_ context.Context, orderID id.ID) ([]Line, error) {
	return m.lines[orderID], nil
}

// Minimal in-memory inventory backing for the reservation side effect.

type stubRecords struct {
	records map[id.ID]*inventory.Record
}

func (s *stubRecords) GetByProduct(_ context.Context, productID id.ID) (*inventory.Record, error) {
	rec, ok := s.records[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *stubRecords) GetByProductForUpdate(ctx context.Context, productID id.ID) (*inventory.Record, error) {
	return s.GetByProduct(ctx, productID)
}

func (s *stubRecords) Upsert(_ context.Context, rec inventory.Record) error {
	if existing, ok := s.records[rec.ProductID]; ok {
		existing.Stock = rec.Stock
		return nil
	}
	s.records[rec.ProductID] = &rec
	return nil
}

func (s *stubRecords) List(_ context.Context, _ bool) ([]inventory.Record, error) {
	return nil, nil
}

type stubVariants struct{}

func (stubVariants) ListByProduct(context.Context, id.ID) ([]inventory.VariantStock, error) {
	return nil, nil
}

func (stubVariants) ListByProductForUpdate(context.Context, id.ID) ([]inventory.VariantStock, error) {
	return nil, nil
}

func (stubVariants) GetByID(context.Context, id.ID) (*inventory.VariantStock, error) {
	return nil, nil
}

func (stubVariants) GetByIDForUpdate(context.Context, id.ID) (*inventory.VariantStock, error) {
	return nil, nil
}

func (stubVariants) UpdateStock(context.Context, inventory.VariantStock) error { return nil }

type stubHistory struct {
	entries []inventory.HistoryEntry
}

func (s *stubHistory) Append(_ context.Context, e inventory.HistoryEntry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *stubHistory) ListByProduct(context.Context, id.ID, int, int) ([]inventory.HistoryEntry, error) {
	return nil, nil
}

type stubProducts struct{}

func (stubProducts) GetByID(context.Context, id.ID) (*product.Product, error) { return nil, nil }
func (stubProducts) SetInStock(context.Context, id.ID, bool) error            { return nil }

type noopNotifier struct{}

func (noopNotifier) NotifyLowStock(context.Context, string, int64, int64) error { return nil }

type orderFixture struct {
	repo    *mockOrderRepo
	records *stubRecords
	history *stubHistory
	service *Service
}

func newOrderFixture() *orderFixture {
	records := &stubRecords{records: make(map[id.ID]*inventory.Record)}
	history := &stubHistory{}
	monitor := inventory.NewMonitor(records, stubProducts{}, noopNotifier{})
	reservation := inventory.NewReservation(records, stubVariants{}, history, passTxManager{}, monitor)

	repo := newMockOrderRepo()
	numbers := &sequence.MockGenerator{}
	return &orderFixture{
		repo:    repo,
		records: records,
		history: history,
		service: NewService(repo, reservation, passTxManager{}, numbers),
	}
}

func (f *orderFixture) stock(productID id.ID, stock int64) {
	f.records.records[productID] = &inventory.Record{
		ProductID:      productID,
		Stock:          stock,
		StockThreshold: inventory.DefaultStockThreshold,
	}
}

func TestService_Create(t *testing.T) {
	f := newOrderFixture()
	productID := id.New()
	f.stock(productID, 10)

	result, err := f.service.Create(context.Background(), New([]Line{
		{ProductID: productID, Quantity: 3},
	}))
	require.NoError(t, err)

	require.Len(t, result.Reservations, 1)
	assert.Equal(t, inventory.LineApplied, result.Reservations[0].Status)
	assert.NotEmpty(t, result.Order.Number)
	assert.Equal(t, int64(7), f.records.records[productID].Stock)

	// Order and lines persisted.
	stored, err := f.service.GetByID(context.Background(), result.Order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, int64(3), stored.Lines[0].Quantity)
}

func TestService_Create_InvalidOrderNeverPersisted(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.Create(context.Background(), New(nil))
	require.Error(t, err)
	assert.Empty(t, f.repo.orders)
	assert.Empty(t, f.history.entries)
}

func TestService_Create_RepoFailureAbortsBeforeReservation(t *testing.T) {
	f := newOrderFixture()
	productID := id.New()
	f.stock(productID, 10)
	f.repo.createErr = errors.New("insert failed")

	_, err := f.service.Create(context.Background(), New([]Line{
		{ProductID: productID, Quantity: 3},
	}))
	require.Error(t, err)
	assert.Equal(t, int64(10), f.records.records[productID].Stock)
	assert.Empty(t, f.history.entries)
}

func TestService_Create_MultiLineDecrementsPerLine(t *testing.T) {
	f := newOrderFixture()
	productID := id.New()
	f.stock(productID, 10)

	result, err := f.service.Create(context.Background(), New([]Line{
		{ProductID: productID, Quantity: 2},
		{ProductID: productID, Quantity: 4},
		{ProductID: productID, Quantity: 1},
	}))
	require.NoError(t, err)

	require.Len(t, result.Reservations, 3)
	for _, r := range result.Reservations {
		assert.Equal(t, inventory.LineApplied, r.Status)
	}
	assert.Equal(t, int64(3), f.records.records[productID].Stock)
	assert.Len(t, f.history.entries, 3)
}

func TestService_GetByID_Unknown(t *testing.T) {
	f := newOrderFixture()

	o, err := f.service.GetByID(context.Background(), id.New())
	require.NoError(t, err)
	assert.Nil(t, o)
}
