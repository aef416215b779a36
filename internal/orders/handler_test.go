package orders

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/domain/order"
	"storefront/internal/domain/product"
	"storefront/internal/pricing"
)

const testUser int64 = 42

type stubRepo struct {
	failCreate bool
	created    *checkout.OrderRequest
}

func (s *stubRepo) Create(_ context.Context, userID int64, req checkout.OrderRequest) (order.Order, error) {
	if s.failCreate {
		return order.Order{}, errors.New("backend rejected the order")
	}
	s.created = &req
	return order.Order{
		ID:            1001,
		Reference:     "ref-1001",
		UserID:        userID,
		Status:        order.StatusPending,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		TotalAmount:   req.TotalAmount,
		CreatedAt:     time.Now(),
	}, nil
}

func (s *stubRepo) ListByUser(context.Context, int64) ([]order.Order, error) {
	return nil, nil
}

func (s *stubRepo) GetByUser(context.Context, int64, int64) (order.Order, error) {
	return order.Order{}, ErrNotFound
}

func setup(t *testing.T, repo Repository) (*gin.Engine, *cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cart.NewStore(cart.NewMemoryStorage(), zap.NewNop())
	h := NewHandler(repo, store, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(auth.CtxUserIDKey, testUser) })
	r.POST("/orders", h.Submit)
	return r, store
}

func addTestLine(t *testing.T, store *cart.Store) {
	t.Helper()
	p := product.Product{
		ID: 1, Name: "Amber Reserve", Price: 10, StockQty: 5, HasStock: true, Intensity: 6,
	}
	_, err := store.AddLine(context.Background(), testUser, pricing.Selection{Product: p}, 2, nil)
	require.NoError(t, err)
}

func submit(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"notes":"ring the bell"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitClearsCartOnSuccess(t *testing.T) {
	repo := &stubRepo{}
	r, store := setup(t, repo)
	addTestLine(t, store)

	w := submit(r)
	assert.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, repo.created)
	assert.Equal(t, order.PaymentPayAtPickup, repo.created.PaymentMethod)
	assert.Equal(t, "ring the bell", repo.created.Notes)

	crt := store.Get(context.Background(), testUser)
	assert.Empty(t, crt.Lines, "cart cleared only after confirmed success")
}

func TestSubmitFailureLeavesCartIntact(t *testing.T) {
	repo := &stubRepo{failCreate: true}
	r, store := setup(t, repo)
	addTestLine(t, store)

	w := submit(r)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	crt := store.Get(context.Background(), testUser)
	require.Len(t, crt.Lines, 1, "failed submission must not clear the cart")
	assert.Equal(t, 2, crt.Count)
}

func TestSubmitEmptyCart(t *testing.T) {
	repo := &stubRepo{}
	r, _ := setup(t, repo)

	w := submit(r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.created)
}
