package pricing

// AvailableStock resolves how many units the selection can sell right now.
// Resolution order, first match wins:
//
//  1. selected flavor's stock
//  2. selected variant's stock
//  3. no flavor chosen yet but the product has flavors: sum of active
//     flavor stocks (shown before the shopper picks one)
//  4. no variant chosen yet but the product has variants: sum of variant
//     stocks
//  5. the product's own stock
//
// Negative counts are treated as zero. Pure function, no side effects.
func AvailableStock(sel Selection) int {
	switch sel.Kind() {
	case KindFlavor:
		return clampStock(sel.Flavor.StockQty)
	case KindVariant:
		return clampStock(sel.Variant.StockQty)
	}

	p := sel.Product
	if flavors := p.ActiveFlavors(); len(flavors) > 0 {
		total := 0
		for _, f := range flavors {
			total += clampStock(f.StockQty)
		}
		return total
	}
	if len(p.Variants) > 0 {
		total := 0
		for _, v := range p.Variants {
			total += clampStock(v.StockQty)
		}
		return total
	}
	return clampStock(p.StockQty)
}

// InStock reports whether the selection is sellable at all. The product's
// has_stock flag is an independent override: when unset the product is out
// of stock no matter what the counts say.
func InStock(sel Selection) bool {
	return sel.Product.HasStock && AvailableStock(sel) > 0
}

func clampStock(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
