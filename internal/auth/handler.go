package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain/user"
)

type Dependencies struct {
	JWT     *JWTManager
	Users   *UserRepo
	Refresh *RefreshRepo
}

type Handler struct {
	deps Dependencies
}

func NewHandler(d Dependencies) *Handler {
	return &Handler{deps: d}
}

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	pwHash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
		return
	}

	u, err := h.deps.Users.Create(c.Request.Context(), req.Email, req.Name, pwHash, "user")
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		return
	}

	c.JSON(http.StatusCreated, sanitizeUser(u))
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	u, err := h.deps.Users.ByEmail(c.Request.Context(), req.Email)
	if err != nil || !u.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	access, accessExp, _ := h.deps.JWT.SignAccess(u.ID, u.Role)
	refresh, refreshExp, _ := h.deps.JWT.SignRefresh(u.ID, u.Role)
	_ = h.deps.Refresh.Store(c.Request.Context(), u.ID, HashToken(refresh), refreshExp)

	c.JSON(http.StatusOK, gin.H{
		"user":          sanitizeUser(u),
		"access_token":  access,
		"access_exp":    accessExp,
		"refresh_token": refresh,
		"refresh_exp":   refreshExp,
	})
}

// Rotate refresh token
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := h.deps.JWT.ParseRefresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	ok, err := h.deps.Refresh.IsValid(c.Request.Context(), claims.UserID, HashToken(req.RefreshToken))
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token expired or revoked"})
		return
	}

	access, accessExp, _ := h.deps.JWT.SignAccess(claims.UserID, claims.Role)
	newRefresh, refreshExp, _ := h.deps.JWT.SignRefresh(claims.UserID, claims.Role)
	if err := h.deps.Refresh.Rotate(c.Request.Context(), claims.UserID,
		HashToken(req.RefreshToken), HashToken(newRefresh), refreshExp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token rotation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"access_exp":    accessExp,
		"refresh_token": newRefresh,
		"refresh_exp":   refreshExp,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	claims, err := h.deps.JWT.ParseRefresh(req.RefreshToken)
	if err == nil {
		_ = h.deps.Refresh.Revoke(c.Request.Context(), claims.UserID, HashToken(req.RefreshToken))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Me(c *gin.Context) {
	uidAny, _ := c.Get(CtxUserIDKey)
	uid, _ := uidAny.(int64)

	u, err := h.deps.Users.ByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, sanitizeUser(u))
}

type updateMeReq struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) UpdateMe(c *gin.Context) {
	uidAny, _ := c.Get(CtxUserIDKey)
	uid, _ := uidAny.(int64)

	var req updateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.deps.Users.UpdateName(c.Request.Context(), uid, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}
	c.JSON(http.StatusOK, sanitizeUser(u))
}

func sanitizeUser(u user.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
