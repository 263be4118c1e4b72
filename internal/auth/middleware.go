package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyAuthType = "auth_type" // "session", "bearer", or "none"
)

// AuthType indicates how the user was authenticated
type AuthType string

const (
	AuthTypeNone    AuthType = "none"
	AuthTypeSession AuthType = "session"
	AuthTypeBearer  AuthType = "bearer"
)

// Middleware resolves the caller from a bearer token or a session cookie.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	tokens         *TokenIssuer
	publicPaths    map[string]bool
	logger         *slog.Logger
}

// NewMiddleware creates a new authentication middleware. Either of
// sessionManager and tokens may be nil to disable that method.
func NewMiddleware(service *Service, sessionManager *SessionManager, tokens *TokenIssuer) *Middleware {
	publicPaths := map[string]bool{
		"/health":       true,
		"/ping":         true,
		"/metrics":      true,
		"/api/register": true,
		"/api/login":    true,
		"/api/csrf":     true,
	}

	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		tokens:         tokens,
		publicPaths:    publicPaths,
		logger:         slog.Default().With("component", "auth"),
	}
}

// Handler returns a Gin middleware that authenticates every non-public request.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.isPublicPath(c.Request.URL.Path) {
			c.Set(ContextKeyAuthType, AuthTypeNone)
			c.Next()
			return
		}

		// Try Bearer token first (for API clients)
		user, err := m.tryBearerAuth(c)
		if err != nil {
			m.abortLookupFailed(c, err)
			return
		}
		if user != nil {
			setUserContext(c, user, AuthTypeBearer)
			c.Next()
			return
		}

		user, err = m.trySessionAuth(c)
		if err != nil {
			m.abortLookupFailed(c, err)
			return
		}
		if user != nil {
			setUserContext(c, user, AuthTypeSession)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": ErrAuthRequired.Error(),
			"code":  "unauthorized",
		})
	}
}

// tryBearerAuth returns nil, nil when there is no usable token or its user is gone.
func (m *Middleware) tryBearerAuth(c *gin.Context) (*entities.User, error) {
	token, ok := bearerToken(c)
	if !ok || m.tokens == nil {
		return nil, nil
	}

	claims, err := m.tokens.Parse(token)
	if err != nil {
		return nil, nil
	}

	return m.lookupUser(c, claims.UserID)
}

func (m *Middleware) trySessionAuth(c *gin.Context) (*entities.User, error) {
	if m.sessionManager == nil {
		return nil, nil
	}

	userID := m.sessionManager.GetUserID(c.Request.Context())
	if userID == 0 {
		return nil, nil
	}

	return m.lookupUser(c, userID)
}

// lookupUser treats a deleted user as unauthenticated. Any other failure is
// the store's and is returned.
func (m *Middleware) lookupUser(c *gin.Context, id uint) (*entities.User, error) {
	user, err := m.service.GetUserByID(c.Request.Context(), id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (m *Middleware) abortLookupFailed(c *gin.Context, err error) {
	m.logger.Error("failed to load authenticated user", "error", err, "path", c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": "internal server error",
		"code":  "internal_error",
	})
}

func (m *Middleware) isPublicPath(path string) bool {
	return m.publicPaths[path]
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setUserContext(c *gin.Context, user *entities.User, authType AuthType) {
	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyAuthType, authType)
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 if the request is not authenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetAuthType retrieves the authentication method used.
func GetAuthType(c *gin.Context) AuthType {
	if t, exists := c.Get(ContextKeyAuthType); exists {
		if authType, ok := t.(AuthType); ok {
			return authType
		}
	}
	return AuthTypeNone
}

// IsAuthenticated returns true if the request carries a resolved user.
func IsAuthenticated(c *gin.Context) bool {
	return GetUserID(c) != 0
}
