package products

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const relatedLimit = 8

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// Public: list products (optional category=slug)
func (h *Handler) ListPublic(c *gin.Context) {
	var cat *string
	if v := c.Query("category"); v != "" {
		cat = &v
	}

	items, err := h.repo.ListPublic(c.Request.Context(), cat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Public: product details with variants and flavors
func (h *Handler) GetPublic(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	p, err := h.repo.GetPublic(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Public: products from the same category
func (h *Handler) ListRelated(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	items, err := h.repo.ListRelated(c.Request.Context(), id, relatedLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list related products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
