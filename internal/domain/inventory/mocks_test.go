package inventory

import (
	"context"
	"sort"
	"time"

	"shopstock/internal/core/id"
	"shopstock/internal/domain/catalog/product"
)

// In-memory fakes shared by the service, reservation and monitor tests.
// They mirror the SQL semantics the postgres repos implement: upsert
// keeps an existing threshold, list orders variants by id, history is
// append-only.

type mockTxManager struct {
	beginErr error
	calls    int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.beginErr != nil {
		return m.beginErr
	}
	return fn(ctx)
}

type mockRecordRepo struct {
	records map[id.ID]*Record
	getErr  error
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[id.ID]*Record)}
}

func (m *mockRecordRepo) GetByProduct(_ context.Context, productID id.ID) (*Record, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	rec, ok := m.records[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *mockRecordRepo) GetByProductForUpdate(ctx context.Context, productID id.ID) (*Record, error) {
	return m.GetByProduct(ctx, productID)
}

func (m *mockRecordRepo) Upsert(_ context.Context, rec Record) error {
	existing, ok := m.records[rec.ProductID]
	if ok {
		existing.Stock = rec.Stock
		existing.UpdatedAt = time.Now().UTC()
		return nil
	}
	rec.UpdatedAt = time.Now().UTC()
	m.records[rec.ProductID] = &rec
	return nil
}

func (m *mockRecordRepo) List(_ context.Context, lowStockOnly bool) ([]Record, error) {
	var out []Record
	for _, rec := range m.records {
		if lowStockOnly && rec.Stock > rec.StockThreshold {
			continue
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ProductID.String() < out[j].ProductID.String()
	})
	return out, nil
}

type mockVariantRepo struct {
	variants  map[id.ID]*VariantStock
	updateErr error
}

func newMockVariantRepo() *mockVariantRepo {
	return &mockVariantRepo{variants: make(map[id.ID]*VariantStock)}
}

func (m *mockVariantRepo) add(v VariantStock) {
	v.InStock = v.StockQuantity > 0
	m.variants[v.VariantID] = &v
}

func (m *mockVariantRepo) ListByProduct(_ context.Context, productID id.ID) ([]VariantStock, error) {
	var out []VariantStock
	for _, v := range m.variants {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].VariantID.String() < out[j].VariantID.String()
	})
	return out, nil
}

func (m *mockVariantRepo) ListByProductForUpdate(ctx context.Context, productID id.ID) ([]VariantStock, error) {
	return m.ListByProduct(ctx, productID)
}

func (m *mockVariantRepo) GetByID(_ context.Context, variantID id.ID) (*VariantStock, error) {
	v, ok := m.variants[variantID]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *mockVariantRepo) GetByIDForUpdate(ctx context.Context, variantID id.ID) (*VariantStock, error) {
	return m.GetByID(ctx, variantID)
}

func (m *mockVariantRepo) UpdateStock(_ context.Context, v VariantStock) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.variants[v.VariantID]
	if !ok {
		return nil
	}
	*stored = v
	return nil
}

type mockHistoryRepo struct {
	entries   []HistoryEntry
	appendErr error
}

func (m *mockHistoryRepo) Append(_ context.Context, entry HistoryEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryRepo) ListByProduct(_ context.Context, productID id.ID, limit, offset int) ([]HistoryEntry, error) {
	var out []HistoryEntry
	for _, e := range m.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockHistoryRepo) byProduct(productID id.ID) []HistoryEntry {
	out, _ := m.ListByProduct(context.Background(), productID, 0, 0)
	return out
}

type mockProductRepo struct {
	products map[id.ID]*product.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[id.ID]*product.Product)}
}

func (m *mockProductRepo) add(p product.Product) {
	m.products[p.ID] = &p
}

func (m *mockProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) SetInStock(_ context.Context, productID id.ID, inStock bool) error {
	if p, ok := m.products[productID]; ok {
		p.InStock = inStock
	}
	return nil
}

type notification struct {
	productName string
	stock       int64
	threshold   int64
}

type mockNotifier struct {
	sent    []notification
	sendErr error
}

func (m *mockNotifier) NotifyLowStock(_ context.Context, productName string, currentStock, threshold int64) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, notification{productName, currentStock, threshold})
	return nil
}

// fixture wires a full engine over the in-memory fakes.
type fixture struct {
	records  *mockRecordRepo
	variants *mockVariantRepo
	history  *mockHistoryRepo
	products *mockProductRepo
	notifier *mockNotifier
	txm      *mockTxManager

	monitor     *Monitor
	service     *Service
	reservation *Reservation
}

func newFixture() *fixture {
	f := &fixture{
		records:  newMockRecordRepo(),
		variants: newMockVariantRepo(),
		history:  &mockHistoryRepo{},
		products: newMockProductRepo(),
		notifier: &mockNotifier{},
		txm:      &mockTxManager{},
	}
	f.monitor = NewMonitor(f.records, f.products, f.notifier)
	f.service = NewService(f.records, f.variants, f.history, f.products, f.txm, f.monitor)
	f.reservation = NewReservation(f.records, f.variants, f.history, f.txm, f.monitor)
	return f
}

// addProduct registers a product with an optional existing record.
func (f *fixture) addProduct(name string, stock, threshold int64) id.ID {
	productID := id.New()
	f.products.add(product.Product{ID: productID, Name: name, InStock: stock > 0})
	if threshold > 0 {
		f.records.records[productID] = &Record{
			ProductID:      productID,
			Stock:          stock,
			StockThreshold: threshold,
		}
	}
	return productID
}

// addVariant registers a variant stock row for a product.
func (f *fixture) addVariant(productID id.ID, stock int64) id.ID {
	variantID := id.New()
	f.variants.add(VariantStock{
		VariantID:     variantID,
		ProductID:     productID,
		StockQuantity: stock,
	})
	return variantID
}
