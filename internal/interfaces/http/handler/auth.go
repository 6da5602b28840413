package handler

import (
	"net/http"
	"time"

	identityapp "github.com/archerandash/storefront/internal/application/identity"
	"github.com/archerandash/storefront/internal/infrastructure/config"
	"github.com/archerandash/storefront/internal/infrastructure/logger"
	"github.com/archerandash/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles admin sign-in
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	cookie      config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// LoginRequest is the body of POST /auth/login
// @Description Admin credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"owner@archerandash.com"`
	Password string `json:"password" binding:"required"`
}

// AuthCheckResponse reports whether the request carries a valid session
// @Description Session state
type AuthCheckResponse struct {
	Authenticated bool                  `json:"authenticated"`
	User          *identityapp.UserInfo `json:"user,omitempty"`
}

// Login godoc
// @Summary      Sign in
// @Description  Sets an httpOnly token cookie valid for one day
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	setCookie(c, h.cookie, middleware.TokenCookie, result.Token, maxAge, true)
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Check godoc
// @Summary      Check the session
// @Tags         auth
// @Produce      json
// @Success      200 {object} AuthCheckResponse
// @Failure      401 {object} AuthCheckResponse
// @Router       /auth/check [get]
func (h *AuthHandler) Check(c *gin.Context) {
	session, err := h.authService.Authenticate(c.Request.Context(), middleware.TokenFromRequest(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, AuthCheckResponse{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, AuthCheckResponse{Authenticated: true, User: &session.User})
}

// Logout godoc
// @Summary      Sign out
// @Description  Revokes the token for the rest of its lifetime and clears the cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} SuccessResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.TokenFromRequest(c); token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			// The cookie is cleared regardless; the token stays valid until expiry
			logger.GetGinLogger(c).Warn("Failed to revoke session token", zap.Error(err))
		}
	}
	setCookie(c, h.cookie, middleware.TokenCookie, "", -1, true)
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
