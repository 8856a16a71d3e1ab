// Package product provides the minimal catalog surface the stock
// engine depends on. Product content management is out of scope;
// identities are assumed to exist.
package product

import (
	"shopstock/internal/core/id"
)

// Product is the catalog entity the engine reads and whose InStock
// flag it maintains as a side effect of stock writes.
type Product struct {
	ID      id.ID  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	InStock bool   `db:"in_stock" json:"inStock"`
}
