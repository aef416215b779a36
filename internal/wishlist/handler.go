package wishlist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetMine(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	ids, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_ids": ids})
}

type ItemReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func (h *Handler) Add(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	var req ItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.store.Add(c.Request.Context(), userID, req.ProductID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Remove(c *gin.Context) {
	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	var req ItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.store.Remove(c.Request.Context(), userID, req.ProductID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
