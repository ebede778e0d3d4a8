package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/PShah260898/PRS-FinSight/internal/repository"
	"github.com/PShah260898/PRS-FinSight/internal/service"
)

const ctxUserIDKey = "auth_user_id"

type AuthHandler struct {
	Auth *service.AuthService
	Repo repository.Repository
}

func (h *AuthHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)

	me := r.Group("/api/v1/me", h.RequireAuth())
	me.GET("", h.me)
	me.PUT("/settings", h.updateSettings)
}

// RequireAuth validates the bearer token and stashes the user id on the
// request context.
func (h *AuthHandler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token == header {
			Error(c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		userID, err := h.Auth.VerifyToken(token)
		if err != nil {
			Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}
		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ctxUserIDKey); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Param payload body registerRequest true "registration"
// @Success 200 {object} apiResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user, err := h.Auth.Register(c.Request.Context(), service.RegisterInput{
		FullName: req.FullName,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, service.ErrUsernameTaken) {
			status = http.StatusConflict
		}
		Error(c, status, err.Error(), nil)
		return
	}
	Ok(c, user, nil)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary Log in and receive a token
// @Tags auth
// @Accept json
// @Param payload body loginRequest true "credentials"
// @Success 200 {object} apiResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user, token, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			Error(c, http.StatusUnauthorized, "invalid username or password", nil)
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"token": token, "user": user}, nil)
}

// @Summary Current account
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/me [get]
func (h *AuthHandler) me(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	user, err := h.Repo.GetUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if user == nil {
		Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	Ok(c, user, nil)
}

// @Summary Update UI preferences
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Success 200 {object} apiResponse
// @Router /api/v1/me/settings [put]
func (h *AuthHandler) updateSettings(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var settings map[string]any
	if err := c.ShouldBindJSON(&settings); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Repo.UpdateUserSettings(c.Request.Context(), currentUserID(c), raw); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, datatypes.JSON(raw), nil)
}
