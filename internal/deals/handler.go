package deals

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repo
	now  func() time.Time
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo, now: time.Now}
}

// Public: deals currently inside their validity window
func (h *Handler) ListActive(c *gin.Context) {
	items, err := h.repo.ListActive(c.Request.Context(), h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list deals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Public: active banner deals
func (h *Handler) ListBanner(c *gin.Context) {
	items, err := h.repo.ListBanner(c.Request.Context(), h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list banner deals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
