package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/archerandash/storefront/internal/application/identity"
	"github.com/archerandash/storefront/internal/infrastructure/logger"
	"github.com/archerandash/storefront/internal/interfaces/http/dto"
)

// Session context keys and request conventions
const (
	SessionKey    = "session"
	UserIDKey     = "user_id"
	UserEmailKey  = "user_email"
	TokenCookie   = "token"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// SessionAuthenticator validates a session token
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.SessionInfo, error)
}

// TokenFromRequest returns the session token from the token cookie or,
// failing that, an Authorization: Bearer header
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader(AuthHeaderKey)
	if strings.HasPrefix(header, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	}
	return ""
}

// authenticate validates the request token and stores the session on success
func authenticate(c *gin.Context, authn SessionAuthenticator) (*identity.SessionInfo, error) {
	token := TokenFromRequest(c)
	if token == "" {
		return nil, identity.ErrSessionInvalid
	}
	session, err := authn.Authenticate(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}

	c.Set(SessionKey, session)
	c.Set(UserIDKey, session.User.UserID.String())
	c.Set(UserEmailKey, session.User.Email)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), session.User.UserID.String()))
	return session, nil
}

// RequireAuth rejects requests without a valid session with 401
func RequireAuth(authn SessionAuthenticator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if _, err := authenticate(c, authn); err != nil {
			log.Debug("Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

// HubGuard redirects unauthenticated requests for admin hub pages to
// loginPath. The login page itself is always let through.
func HubGuard(authn SessionAuthenticator, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == loginPath {
			c.Next()
			return
		}
		if _, err := authenticate(c, authn); err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession returns the session stored by RequireAuth, or nil
func GetSession(c *gin.Context) *identity.SessionInfo {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(*identity.SessionInfo); ok {
			return s
		}
	}
	return nil
}

// GetUserID returns the authenticated admin's id, or ""
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetUserEmail returns the authenticated admin's email, or ""
func GetUserEmail(c *gin.Context) string {
	return c.GetString(UserEmailKey)
}
