package deal

import "time"

type DiscountKind string

const (
	Percentage  DiscountKind = "percentage"
	FixedAmount DiscountKind = "fixed"
)

// Deal is a time-boxed discount overlay. When Items is empty the deal applies
// to every product in ProductIDs; otherwise a selection must match one of the
// Items, including its recorded variant/flavor scope.
type Deal struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	Kind       DiscountKind `json:"kind"`
	Value      float64      `json:"value"` // percent (0-100) or fixed amount off
	StartsAt   time.Time    `json:"starts_at"`
	EndsAt     time.Time    `json:"ends_at"`
	IsBanner   bool         `json:"is_banner"`
	ProductIDs []int64      `json:"product_ids,omitempty"`
	Items      []Item       `json:"items,omitempty"`
}

// Item scopes a deal to a product, optionally pinned to one variant or
// flavor. A nil VariantID/FlavorID means the item covers any selection of
// that dimension.
type Item struct {
	ProductID int64  `json:"product_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
	FlavorID  *int64 `json:"flavor_id,omitempty"`
}

// ActiveAt reports whether the deal is inside its validity window. A deal is
// expired the moment now passes EndsAt.
func (d *Deal) ActiveAt(now time.Time) bool {
	return !now.Before(d.StartsAt) && now.Before(d.EndsAt)
}

// Covers reports whether the deal applies to the given selection. Deals with
// an explicit item list discount only the exact variant/flavor recorded for
// the product, never a sibling variant of the same product.
func (d *Deal) Covers(productID int64, variantID, flavorID *int64) bool {
	if len(d.Items) == 0 {
		for _, id := range d.ProductIDs {
			if id == productID {
				return true
			}
		}
		return false
	}
	for _, it := range d.Items {
		if it.ProductID != productID {
			continue
		}
		if it.VariantID != nil && !idEqual(it.VariantID, variantID) {
			continue
		}
		if it.FlavorID != nil && !idEqual(it.FlavorID, flavorID) {
			continue
		}
		return true
	}
	return false
}

func idEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
