package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Product{
		StockQty:  -3,
		Intensity: 0,
		Variants:  []Variant{{ID: 1, StockQty: -1}},
		Flavors:   []Flavor{{ID: 2, StockQty: -9, IsActive: true}},
	}
	Normalize(&p)

	assert.Equal(t, 0, p.StockQty)
	assert.Equal(t, DefaultIntensity, p.Intensity)
	assert.Equal(t, 0, p.Variants[0].StockQty)
	assert.Equal(t, 0, p.Flavors[0].StockQty)
}

func TestNormalizeKeepsValidIntensity(t *testing.T) {
	p := Product{Intensity: 8, StockQty: 2}
	Normalize(&p)
	assert.Equal(t, 8, p.Intensity)
}

func TestFlavorByIDSkipsInactive(t *testing.T) {
	p := Product{Flavors: []Flavor{
		{ID: 1, Name: "Cherry", IsActive: true},
		{ID: 2, Name: "Discontinued", IsActive: false},
	}}

	assert.NotNil(t, p.FlavorByID(1))
	assert.Nil(t, p.FlavorByID(2))
}
