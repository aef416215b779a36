package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/deal"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func activeDeal(kind deal.DiscountKind, value float64) *deal.Deal {
	return &deal.Deal{
		ID:       7,
		Kind:     kind,
		Value:    value,
		StartsAt: testNow.Add(-time.Hour),
		EndsAt:   testNow.Add(time.Hour),
	}
}

func TestBasePricePriority(t *testing.T) {
	p := variantProduct()

	// variant selected wins over the $10 base price
	got := BasePrice(Selection{Product: p, Variant: &p.Variants[0]})
	assert.True(t, got.Equal(decimal.NewFromInt(25)), "got %s", got)

	// no selection falls back to base
	got = BasePrice(Selection{Product: p})
	assert.True(t, got.Equal(decimal.NewFromInt(10)), "got %s", got)
}

func TestBasePriceFlavorOverVariant(t *testing.T) {
	p := flavorProduct()
	got := BasePrice(Selection{Product: p, Flavor: &p.Flavors[1]})
	assert.True(t, got.Equal(decimal.NewFromInt(15)), "got %s", got)
}

func TestUnitPricePercentageDeal(t *testing.T) {
	p := variantProduct()
	sel := Selection{Product: p, Variant: &p.Variants[0]}
	d := activeDeal(deal.Percentage, 20)
	d.ProductIDs = []int64{p.ID}

	got := UnitPrice(sel, d, testNow)
	assert.True(t, got.Equal(decimal.NewFromInt(20)), "20%% off $25 should be $20, got %s", got)
}

func TestUnitPriceFixedAmountDeal(t *testing.T) {
	p := variantProduct()
	sel := Selection{Product: p, Variant: &p.Variants[0]}
	d := activeDeal(deal.FixedAmount, 5)
	d.ProductIDs = []int64{p.ID}

	got := UnitPrice(sel, d, testNow)
	assert.True(t, got.Equal(decimal.NewFromInt(20)), "$5 off $25 should be $20, got %s", got)
}

func TestUnitPriceFixedAmountFloorsAtZero(t *testing.T) {
	p := variantProduct()
	p.Price = 3
	sel := Selection{Product: p}
	d := activeDeal(deal.FixedAmount, 5)
	d.ProductIDs = []int64{p.ID}

	got := UnitPrice(sel, d, testNow)
	assert.True(t, got.IsZero(), "$5 off $3 floors at $0, got %s", got)
}

func TestDiscountPercentageOverHundredFloorsAtZero(t *testing.T) {
	d := &deal.Deal{Kind: deal.Percentage, Value: 150}

	got := Discount(decimal.NewFromInt(25), d)
	assert.True(t, got.IsZero(), "150%% off floors at $0, got %s", got)
}

func TestUnitPriceDealItemSpecificity(t *testing.T) {
	p := variantProduct()
	variantA := p.Variants[0].ID
	d := activeDeal(deal.Percentage, 20)
	d.Items = []deal.Item{{ProductID: p.ID, VariantID: &variantA}}

	// variant A is discounted
	got := UnitPrice(Selection{Product: p, Variant: &p.Variants[0]}, d, testNow)
	assert.True(t, got.Equal(decimal.NewFromInt(20)), "got %s", got)

	// variant B of the same product is not
	got = UnitPrice(Selection{Product: p, Variant: &p.Variants[1]}, d, testNow)
	assert.True(t, got.Equal(decimal.NewFromInt(45)), "got %s", got)
}

func TestUnitPriceExpiredDealDoesNotDiscount(t *testing.T) {
	p := variantProduct()
	sel := Selection{Product: p, Variant: &p.Variants[0]}
	d := activeDeal(deal.Percentage, 20)
	d.ProductIDs = []int64{p.ID}

	got := UnitPrice(sel, d, d.EndsAt.Add(time.Minute))
	assert.True(t, got.Equal(decimal.NewFromInt(25)), "expired deal must not apply, got %s", got)
}

func TestUnitPriceNilDeal(t *testing.T) {
	p := variantProduct()
	got := UnitPrice(Selection{Product: p, Variant: &p.Variants[0]}, nil, testNow)
	assert.True(t, got.Equal(decimal.NewFromInt(25)))
}

func TestDiscountKeepsFullPrecision(t *testing.T) {
	price := decimal.RequireFromString("19.99")
	d := &deal.Deal{Kind: deal.Percentage, Value: 15}

	got := Discount(price, d)
	require.True(t, got.Equal(decimal.RequireFromString("16.9915")), "got %s", got)
	assert.Equal(t, "16.99", Display(got))
}

func TestDisplayPadsToTwoDecimals(t *testing.T) {
	assert.Equal(t, "20.00", Display(decimal.NewFromInt(20)))
	assert.Equal(t, "3.15", Display(decimal.RequireFromString("3.1486")))
}
