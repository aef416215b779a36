package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/deal"
)

var hundred = decimal.NewFromInt(100)

// BasePrice resolves the undiscounted unit price of a selection, mirroring
// the stock priority: flavor, then variant, then the product's base price.
func BasePrice(sel Selection) decimal.Decimal {
	switch sel.Kind() {
	case KindFlavor:
		return decimal.NewFromFloat(sel.Flavor.Price)
	case KindVariant:
		return decimal.NewFromFloat(sel.Variant.Price)
	default:
		return decimal.NewFromFloat(sel.Product.Price)
	}
}

// UnitPrice resolves the selection's unit price and applies d's discount when
// the deal is non-nil, active at now, and covers the selection. The result
// keeps full precision; round only at display or aggregation boundaries.
func UnitPrice(sel Selection, d *deal.Deal, now time.Time) decimal.Decimal {
	price := BasePrice(sel)
	if d == nil || !d.ActiveAt(now) {
		return price
	}
	if !d.Covers(sel.Product.ID, sel.VariantID(), sel.FlavorID()) {
		return price
	}
	return Discount(price, d)
}

// Discount applies the deal's discount to price. The result never goes below
// zero, even for malformed deal rows with a percentage over 100.
func Discount(price decimal.Decimal, d *deal.Deal) decimal.Decimal {
	var out decimal.Decimal
	switch d.Kind {
	case deal.Percentage:
		pct := decimal.NewFromFloat(d.Value)
		out = price.Sub(price.Mul(pct).Div(hundred))
	case deal.FixedAmount:
		out = price.Sub(decimal.NewFromFloat(d.Value))
	default:
		return price
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// RoundMoney rounds to the 2 decimal places shown to the shopper.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Display formats a monetary value with exactly two decimals.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
