package checkout

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain/cart"
	"storefront/internal/pricing"
)

// TaxRate is the fixed 7% sales tax applied at checkout.
var TaxRate = decimal.New(7, -2)

// Totals is a pure derivation of a cart snapshot. Values keep full
// precision; Display rounds for presentation.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// CalculateTotals computes subtotal, tax, and grand total from the cart.
// Recompute on every read; never cache against the cart.
func CalculateTotals(c cart.Cart) Totals {
	subtotal := decimal.Zero
	for _, l := range c.Lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// DisplayTotals carries the two-decimal strings shown to the shopper.
type DisplayTotals struct {
	Subtotal   string `json:"subtotal"`
	Tax        string `json:"tax"`
	GrandTotal string `json:"grand_total"`
}

func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal:   pricing.Display(t.Subtotal),
		Tax:        pricing.Display(t.Tax),
		GrandTotal: pricing.Display(t.GrandTotal),
	}
}
