package cart

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/checkout"
	"storefront/internal/deals"
	"storefront/internal/pricing"
	"storefront/internal/products"
)

type Handler struct {
	store   *Store
	catalog *products.Repo
	deals   *deals.Repo
}

func NewHandler(store *Store, catalog *products.Repo, dealsRepo *deals.Repo) *Handler {
	return &Handler{store: store, catalog: catalog, deals: dealsRepo}
}

func (h *Handler) GetMyCart(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	crt := h.store.Get(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"cart": crt, "totals": checkout.CalculateTotals(crt).Display()})
}

type AddItemReq struct {
	ProductID int64  `json:"product_id" binding:"required"`
	VariantID *int64 `json:"variant_id"`
	FlavorID  *int64 `json:"flavor_id"`
	Qty       int    `json:"qty" binding:"required"`
}

func (h *Handler) AddItem(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	var req AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sel, ok := h.resolveSelection(c, req.ProductID, req.VariantID, req.FlavorID)
	if !ok {
		return
	}

	d, err := h.deals.ActiveForSelection(c.Request.Context(), h.store.Now(), req.ProductID, req.VariantID, req.FlavorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check deals"})
		return
	}

	crt, err := h.store.AddLine(c.Request.Context(), userID, sel, req.Qty, d)
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrProductOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "product is out of stock"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": crt})
}

type UpdateQtyReq struct {
	ProductID int64  `json:"product_id" binding:"required"`
	VariantID *int64 `json:"variant_id"`
	FlavorID  *int64 `json:"flavor_id"`
	Qty       int    `json:"qty"` // 0 or below removes the line
}

func (h *Handler) UpdateQty(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	var req UpdateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sel, ok := h.resolveSelection(c, req.ProductID, req.VariantID, req.FlavorID)
	if !ok {
		return
	}

	crt, err := h.store.UpdateQuantity(c.Request.Context(), userID, sel, req.Qty)
	var stockErr *StockUnavailableError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"available": stockErr.Available,
			"cart":      crt,
		})
		return
	case errors.Is(err, ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "cart line not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update qty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": crt})
}

type RemoveItemReq struct {
	ProductID int64  `json:"product_id" binding:"required"`
	VariantID *int64 `json:"variant_id"`
	FlavorID  *int64 `json:"flavor_id"`
}

func (h *Handler) RemoveItem(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	var req RemoveItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	crt := h.store.RemoveLine(c.Request.Context(), userID, req.ProductID, req.VariantID, req.FlavorID)
	c.JSON(http.StatusOK, gin.H{"cart": crt})
}

func (h *Handler) ClearCart(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	h.store.Clear(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// resolveSelection loads the product and pins the requested variant/flavor.
// Writes the error response itself and returns ok=false when the selection
// cannot be built.
func (h *Handler) resolveSelection(c *gin.Context, productID int64, variantID, flavorID *int64) (pricing.Selection, bool) {
	p, err := h.catalog.GetPublic(c.Request.Context(), productID)
	if errors.Is(err, products.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return pricing.Selection{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return pricing.Selection{}, false
	}

	sel := pricing.Selection{Product: p}
	if variantID != nil {
		if sel.Variant = p.VariantByID(*variantID); sel.Variant == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown variant"})
			return pricing.Selection{}, false
		}
	}
	if flavorID != nil {
		if sel.Flavor = p.FlavorByID(*flavorID); sel.Flavor == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown flavor"})
			return pricing.Selection{}, false
		}
	}
	return sel, true
}
