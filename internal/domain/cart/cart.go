package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/product"
)

// Line is one row of the cart: a specific product+variant+flavor selection,
// its quantity, and the unit price locked in when the line was added (deal
// discount already applied, so later deal expiry does not reprice the line).
type Line struct {
	ProductID int64            `json:"product_id"`
	Name      string           `json:"name"`
	Image     string           `json:"image,omitempty"`
	StockQty  int              `json:"stock_qty"`
	HasStock  bool             `json:"has_stock"`
	Intensity int              `json:"intensity"`
	Variant   *product.Variant `json:"variant,omitempty"`
	Flavor    *product.Flavor  `json:"flavor,omitempty"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	DealID    *int64           `json:"deal_id,omitempty"`
	AddedAt   time.Time        `json:"added_at"`
}

// VariantID returns the selected variant id, or nil for a plain selection.
func (l *Line) VariantID() *int64 {
	if l.Variant == nil {
		return nil
	}
	return &l.Variant.ID
}

// FlavorID returns the selected flavor id, or nil for a plain selection.
func (l *Line) FlavorID() *int64 {
	if l.Flavor == nil {
		return nil
	}
	return &l.Flavor.ID
}

// SameSelection reports whether the line represents the given selection.
// Product id must match and variant/flavor ids must match exactly (both
// absent, or both equal) so two sizes of one product never merge.
func (l *Line) SameSelection(productID int64, variantID, flavorID *int64) bool {
	return l.ProductID == productID &&
		idEqual(l.VariantID(), variantID) &&
		idEqual(l.FlavorID(), flavorID)
}

func idEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Cart is an ordered sequence of lines plus the derived aggregate count.
// Count is always recomputed from the lines, never drifted incrementally.
type Cart struct {
	Lines []Line `json:"lines"`
	Count int    `json:"count"`
}

// TotalQuantity sums the line quantities.
func (c *Cart) TotalQuantity() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// FindLine returns the line matching the selection, or nil.
func (c *Cart) FindLine(productID int64, variantID, flavorID *int64) *Line {
	for i := range c.Lines {
		if c.Lines[i].SameSelection(productID, variantID, flavorID) {
			return &c.Lines[i]
		}
	}
	return nil
}
