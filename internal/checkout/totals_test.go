package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/cart"
)

func TestCalculateTotals(t *testing.T) {
	c := cart.Cart{Lines: []cart.Line{
		{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")},
		{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
	}}

	totals := CalculateTotals(c)
	require.True(t, totals.Subtotal.Equal(decimal.RequireFromString("44.98")), "subtotal %s", totals.Subtotal)
	require.True(t, totals.Tax.Equal(decimal.RequireFromString("3.1486")), "tax %s", totals.Tax)
	require.True(t, totals.GrandTotal.Equal(decimal.RequireFromString("48.1286")), "grand total %s", totals.GrandTotal)

	display := totals.Display()
	assert.Equal(t, "44.98", display.Subtotal)
	assert.Equal(t, "3.15", display.Tax)
	assert.Equal(t, "48.13", display.GrandTotal)
}

func TestCalculateTotalsEmptyCart(t *testing.T) {
	totals := CalculateTotals(cart.Cart{})
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestCalculateTotalsNoCompoundedRounding(t *testing.T) {
	// 16.9915 * 3 = 50.9745; rounding per-line first would give 50.97 from
	// 16.99 * 3, hiding the half cent
	c := cart.Cart{Lines: []cart.Line{
		{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("16.9915")},
	}}
	totals := CalculateTotals(c)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("50.9745")), "subtotal %s", totals.Subtotal)
	assert.Equal(t, "50.97", totals.Display().Subtotal)
}
