package dto

import (
	"time"

	"shopstock/internal/domain/catalog/product"
	"shopstock/internal/domain/inventory"
)

// --- Requests ---

// AdjustStockRequest is the manual/bulk adjustment input.
// StockChange is a pointer so a missing field is rejected while an
// explicit zero (audit-only adjustment) is accepted.
type AdjustStockRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	StockChange *int64 `json:"stockChange" binding:"required"`
	Reason      string `json:"reason"`
}

// --- Responses ---

// RecordResponse represents an inventory record in API responses.
type RecordResponse struct {
	ProductID      string    `json:"productId"`
	Stock          int64     `json:"stock"`
	StockThreshold int64     `json:"stockThreshold"`
	IsLowStock     bool      `json:"isLowStock"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromRecord converts a domain record to a response DTO.
func FromRecord(r inventory.Record) RecordResponse {
	return RecordResponse{
		ProductID:      r.ProductID.String(),
		Stock:          r.Stock,
		StockThreshold: r.StockThreshold,
		IsLowStock:     r.IsLowStock(),
		UpdatedAt:      r.UpdatedAt,
	}
}

// VariantStockResponse represents a variant's stock state.
type VariantStockResponse struct {
	VariantID     string `json:"variantId"`
	ProductID     string `json:"productId"`
	StockQuantity int64  `json:"stockQuantity"`
	InStock       bool   `json:"inStock"`
}

// FromVariantStock converts a domain variant to a response DTO.
func FromVariantStock(v inventory.VariantStock) VariantStockResponse {
	return VariantStockResponse{
		VariantID:     v.VariantID.String(),
		ProductID:     v.ProductID.String(),
		StockQuantity: v.StockQuantity,
		InStock:       v.InStock,
	}
}

// ProductResponse represents the refreshed product with its variants.
type ProductResponse struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	InStock  bool                   `json:"inStock"`
	Variants []VariantStockResponse `json:"variants"`
}

// FromProduct converts a product and its variants to a response DTO.
func FromProduct(p *product.Product, variants []inventory.VariantStock) ProductResponse {
	vs := make([]VariantStockResponse, len(variants))
	for i, v := range variants {
		vs[i] = FromVariantStock(v)
	}
	return ProductResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		InStock:  p.InStock,
		Variants: vs,
	}
}

// AdjustStockResponse is the adjustment output: the resulting record
// plus the refreshed product including its variants.
type AdjustStockResponse struct {
	Record  RecordResponse  `json:"record"`
	Product ProductResponse `json:"product"`
}

// InventoryOverviewResponse is the read API's per-product view.
type InventoryOverviewResponse struct {
	ProductID         string                 `json:"productId"`
	ProductName       string                 `json:"productName,omitempty"`
	Stock             int64                  `json:"stock"`
	StockThreshold    int64                  `json:"stockThreshold"`
	IsLowStock        bool                   `json:"isLowStock"`
	Variants          []VariantStockResponse `json:"variants"`
	TotalVariantStock int64                  `json:"totalVariantStock"`
}

// FromOverview converts a domain overview to a response DTO.
func FromOverview(o inventory.Overview) InventoryOverviewResponse {
	vs := make([]VariantStockResponse, len(o.Variants))
	for i, v := range o.Variants {
		vs[i] = FromVariantStock(v)
	}
	resp := InventoryOverviewResponse{
		ProductID:         o.Record.ProductID.String(),
		Stock:             o.Record.Stock,
		StockThreshold:    o.Record.StockThreshold,
		IsLowStock:        o.IsLowStock(),
		Variants:          vs,
		TotalVariantStock: o.TotalVariantStock,
	}
	if o.Product != nil {
		resp.ProductName = o.Product.Name
	}
	return resp
}

// HistoryEntryResponse represents one ledger entry.
type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	VariantID string    `json:"variantId,omitempty"`
	Change    int64     `json:"change"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromHistoryEntry converts a ledger entry to a response DTO.
func FromHistoryEntry(e inventory.HistoryEntry) HistoryEntryResponse {
	resp := HistoryEntryResponse{
		ID:        e.ID.String(),
		ProductID: e.ProductID.String(),
		Change:    e.Change,
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt,
	}
	if e.VariantID != nil {
		resp.VariantID = e.VariantID.String()
	}
	return resp
}
