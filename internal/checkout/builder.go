package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/order"
	"storefront/internal/domain/product"
)

// OrderRequest is the shape handed to order creation: the cart snapshot
// flattened into items plus the payment method and shopper notes. Building
// it has no side effects; the caller clears the cart only after the order
// is confirmed.
type OrderRequest struct {
	Items         []order.Item    `json:"items"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// BuildOrderRequest maps each cart line to an order item, preserving the
// selected variant/flavor snapshot and defaulting a missing intensity to 5
// for the downstream order record.
func BuildOrderRequest(c cart.Cart, paymentMethod, notes string) OrderRequest {
	totals := CalculateTotals(c)
	req := OrderRequest{
		Items:         make([]order.Item, 0, len(c.Lines)),
		PaymentMethod: paymentMethod,
		Notes:         notes,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		TotalAmount:   totals.GrandTotal,
	}
	for _, l := range c.Lines {
		it := order.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			VariantID: l.VariantID(),
			FlavorID:  l.FlavorID(),
			Intensity: l.Intensity,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
		if it.Intensity < 1 || it.Intensity > 10 {
			it.Intensity = product.DefaultIntensity
		}
		if l.Variant != nil {
			it.Size = formatSize(*l.Variant)
		}
		if l.Flavor != nil {
			it.Flavor = l.Flavor.Name
		}
		req.Items = append(req.Items, it)
	}
	return req
}

func formatSize(v product.Variant) string {
	return fmt.Sprintf("%s %s", decimal.NewFromFloat(v.SizeValue).String(), v.SizeUnit)
}
