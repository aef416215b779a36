package orders

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/domain/order"
)

// Repository is the order persistence surface the handler needs; tests stub
// it to simulate submission failure.
type Repository interface {
	Create(ctx context.Context, userID int64, req checkout.OrderRequest) (order.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]order.Order, error)
	GetByUser(ctx context.Context, userID, orderID int64) (order.Order, error)
}

type Handler struct {
	repo   Repository
	store  *cart.Store
	events *Publisher
}

func NewHandler(repo Repository, store *cart.Store, events *Publisher) *Handler {
	return &Handler{repo: repo, store: store, events: events}
}

type SubmitReq struct {
	Notes string `json:"notes"`
}

// Submit turns the current cart snapshot into an order. The cart is cleared
// only after the order is confirmed; a failed submission leaves every line
// in place so the shopper can retry.
func (h *Handler) Submit(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	// notes are optional; an empty body is fine
	var req SubmitReq
	_ = c.ShouldBindJSON(&req)

	crt := h.store.Get(c.Request.Context(), userID)
	if len(crt.Lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	payload := checkout.BuildOrderRequest(crt, order.PaymentPayAtPickup, req.Notes)
	o, err := h.repo.Create(c.Request.Context(), userID, payload)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to submit order"})
		return
	}

	h.events.OrderCreated(c.Request.Context(), o)
	h.store.Clear(c.Request.Context(), userID)

	c.JSON(http.StatusCreated, o)
}

func (h *Handler) ListMine(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	items, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) GetMine(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	o, err := h.repo.GetByUser(c.Request.Context(), userID, id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}
	c.JSON(http.StatusOK, o)
}
