package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/domain/deal"
	"storefront/internal/domain/product"
	"storefront/internal/pricing"
)

const testUser int64 = 42

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(storage Storage) *Store {
	s := NewStore(storage, zap.NewNop())
	s.Now = func() time.Time { return fixedNow }
	return s
}

func testProduct() product.Product {
	return product.Product{
		ID:        1,
		Name:      "Amber Reserve",
		Price:     10,
		StockQty:  20,
		HasStock:  true,
		Intensity: 6,
		Variants: []product.Variant{
			{ID: 11, ProductID: 1, SizeValue: 3.5, SizeUnit: "g", Price: 25, StockQty: 4},
			{ID: 12, ProductID: 1, SizeValue: 7, SizeUnit: "g", Price: 45, StockQty: 6},
		},
	}
}

func selectVariant(p product.Product, i int) pricing.Selection {
	return pricing.Selection{Product: p, Variant: &p.Variants[i]}
}

func TestAddLineMergesSameSelection(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct()

	_, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 1, nil)
	require.NoError(t, err)
	crt, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 2, nil)
	require.NoError(t, err)

	require.Len(t, crt.Lines, 1)
	assert.Equal(t, 3, crt.Lines[0].Quantity)
	assert.Equal(t, 3, crt.Count)
}

func TestAddLineDifferentVariantAppends(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct()

	_, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 1, nil)
	require.NoError(t, err)
	crt, err := s.AddLine(context.Background(), testUser, selectVariant(p, 1), 1, nil)
	require.NoError(t, err)

	require.Len(t, crt.Lines, 2)
	assert.Equal(t, 2, crt.Count)
}

func TestAddLineLocksInDealPrice(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct()
	d := &deal.Deal{
		ID:         7,
		Kind:       deal.Percentage,
		Value:      20,
		StartsAt:   fixedNow.Add(-time.Hour),
		EndsAt:     fixedNow.Add(time.Hour),
		ProductIDs: []int64{p.ID},
	}

	crt, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 1, d)
	require.NoError(t, err)
	require.Len(t, crt.Lines, 1)
	assert.True(t, crt.Lines[0].UnitPrice.Equal(decimal.NewFromInt(20)))
	require.NotNil(t, crt.Lines[0].DealID)
	assert.Equal(t, int64(7), *crt.Lines[0].DealID)

	// merging later, with the deal gone, keeps the locked-in price
	crt, err = s.AddLine(context.Background(), testUser, selectVariant(p, 0), 1, nil)
	require.NoError(t, err)
	assert.True(t, crt.Lines[0].UnitPrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 2, crt.Lines[0].Quantity)
}

func TestAddLineRejectsBadQuantity(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct()

	_, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	crt := s.Get(context.Background(), testUser)
	assert.Empty(t, crt.Lines)
}

func TestAddLineRefusesOutOfStock(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct()
	p.Variants[0].StockQty = 0

	_, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 1, nil)
	assert.ErrorIs(t, err, ErrProductOutOfStock)

	// has_stock override refuses too, whatever the counts say
	p = testProduct()
	p.HasStock = false
	_, err = s.AddLine(context.Background(), testUser, selectVariant(p, 0), 1, nil)
	assert.ErrorIs(t, err, ErrProductOutOfStock)

	crt := s.Get(context.Background(), testUser)
	assert.Empty(t, crt.Lines)
	assert.Equal(t, 0, crt.Count)
}

func TestUpdateQuantityClampsAndReportsAvailable(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct() // variant 0 has stock 4

	_, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 2, nil)
	require.NoError(t, err)

	crt, err := s.UpdateQuantity(context.Background(), testUser, selectVariant(p, 0), 9)
	var stockErr *StockUnavailableError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, stockErr.Available)

	require.Len(t, crt.Lines, 1)
	assert.Equal(t, 4, crt.Lines[0].Quantity, "stored quantity never exceeds available stock")
	assert.Equal(t, 4, crt.Count)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct()

	_, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 2, nil)
	require.NoError(t, err)

	crt, err := s.UpdateQuantity(context.Background(), testUser, selectVariant(p, 0), 0)
	require.NoError(t, err)
	assert.Empty(t, crt.Lines)
	assert.Equal(t, 0, crt.Count)
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct()

	_, err := s.UpdateQuantity(context.Background(), testUser, selectVariant(p, 0), 1)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestAggregateCountInvariant(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct()
	ctx := context.Background()

	crt, err := s.AddLine(ctx, testUser, selectVariant(p, 0), 2, nil)
	require.NoError(t, err)
	assert.Equal(t, crt.TotalQuantity(), crt.Count)

	crt, err = s.AddLine(ctx, testUser, selectVariant(p, 1), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, crt.TotalQuantity(), crt.Count)

	crt, err = s.UpdateQuantity(ctx, testUser, selectVariant(p, 0), 4)
	require.NoError(t, err)
	assert.Equal(t, crt.TotalQuantity(), crt.Count)

	crt = s.RemoveLine(ctx, testUser, p.ID, &p.Variants[1].ID, nil)
	assert.Equal(t, crt.TotalQuantity(), crt.Count)
	assert.Equal(t, 4, crt.Count)
}

func TestRemoveLineUnconditional(t *testing.T) {
	s := newTestStore(NewMemoryStorage())
	p := testProduct()

	_, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 2, nil)
	require.NoError(t, err)

	crt := s.RemoveLine(context.Background(), testUser, p.ID, &p.Variants[0].ID, nil)
	assert.Empty(t, crt.Lines)

	// removing again is a no-op, not an error
	crt = s.RemoveLine(context.Background(), testUser, p.ID, &p.Variants[0].ID, nil)
	assert.Empty(t, crt.Lines)
}

func TestClearEmptiesCart(t *testing.T) {
	storage := NewMemoryStorage()
	s := newTestStore(storage)
	p := testProduct()

	_, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 2, nil)
	require.NoError(t, err)

	s.Clear(context.Background(), testUser)
	crt := s.Get(context.Background(), testUser)
	assert.Empty(t, crt.Lines)
	assert.Equal(t, 0, crt.Count)

	data, err := storage.Load(context.Background(), testUser)
	require.NoError(t, err)
	assert.Nil(t, data, "persisted copy dropped")
}

func TestHydrateRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	s := newTestStore(storage)
	p := testProduct()

	_, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 2, nil)
	require.NoError(t, err)

	// a fresh store over the same storage sees the persisted lines
	s2 := newTestStore(storage)
	crt := s2.Get(context.Background(), testUser)
	require.Len(t, crt.Lines, 1)
	assert.Equal(t, 2, crt.Lines[0].Quantity)
	assert.Equal(t, 2, crt.Count)
	assert.True(t, crt.Lines[0].UnitPrice.Equal(decimal.NewFromInt(25)))
}

func TestHydrateCorruptDataFallsBackToEmptyCart(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(context.Background(), testUser, []byte("{not json")))

	s := newTestStore(storage)
	crt := s.Get(context.Background(), testUser)
	assert.Empty(t, crt.Lines)
	assert.Equal(t, 0, crt.Count)

	// the cart stays fully usable afterwards
	p := testProduct()
	crt, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 1, nil)
	require.NoError(t, err)
	assert.Len(t, crt.Lines, 1)
}

type brokenStorage struct{}

func (brokenStorage) Load(context.Context, int64) ([]byte, error) {
	return nil, errors.New("storage unavailable")
}
func (brokenStorage) Save(context.Context, int64, []byte) error {
	return errors.New("storage unavailable")
}
func (brokenStorage) Delete(context.Context, int64) error {
	return errors.New("storage unavailable")
}

func TestStorageFailuresDoNotBlockTheCart(t *testing.T) {
	s := newTestStore(brokenStorage{})
	p := testProduct()

	crt, err := s.AddLine(context.Background(), testUser, selectVariant(p, 0), 2, nil)
	require.NoError(t, err, "persistence failure is logged, not surfaced")
	require.Len(t, crt.Lines, 1)

	crt = s.Get(context.Background(), testUser)
	assert.Equal(t, 2, crt.Count, "in-memory state is authoritative")
}
