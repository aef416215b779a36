package pricing

import "storefront/internal/domain/product"

// Kind tags a selection so the resolvers switch on one explicit dimension
// instead of chained optional-field checks.
type Kind int

const (
	// KindSimple prices and stocks from the product itself.
	KindSimple Kind = iota
	// KindVariant prices and stocks from the selected variant.
	KindVariant
	// KindFlavor prices and stocks from the selected flavor. Flavor wins
	// over variant when both are set.
	KindFlavor
)

// Selection is a product plus an optional chosen variant and/or flavor.
// When both are chosen the flavor drives price and stock while the variant
// still participates in cart line identity.
type Selection struct {
	Product product.Product
	Variant *product.Variant
	Flavor  *product.Flavor
}

func (s Selection) Kind() Kind {
	switch {
	case s.Flavor != nil:
		return KindFlavor
	case s.Variant != nil:
		return KindVariant
	default:
		return KindSimple
	}
}

// VariantID returns the selected variant id, or nil.
func (s Selection) VariantID() *int64 {
	if s.Variant == nil {
		return nil
	}
	return &s.Variant.ID
}

// FlavorID returns the selected flavor id, or nil.
func (s Selection) FlavorID() *int64 {
	if s.Flavor == nil {
		return nil
	}
	return &s.Flavor.ID
}
