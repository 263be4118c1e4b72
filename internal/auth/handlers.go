package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/metrics"
)

// credentialsRequest is the body of register and login.
type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	tokens         *TokenIssuer
	rateLimiter    *RateLimiter
	logger         *slog.Logger
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, tokens *TokenIssuer, cfg config.Auth) *AuthController {
	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		tokens:         tokens,
		rateLimiter:    rateLimiter,
		logger:         slog.Default().With("component", "auth"),
	}
}

// RegisterRoutes registers authentication routes under the API group.
func (ac *AuthController) RegisterRoutes(api gin.IRouter) {
	api.POST("/register", ac.Register)
	api.POST("/login", ac.Login)
	api.POST("/logout", ac.Logout)
	api.GET("/user", ac.CurrentUser)
	api.POST("/auth/token", ac.IssueToken)
	api.GET("/csrf", ac.CSRFToken)
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *AuthController) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

// Register creates an account and signs the new user in.
func (ac *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, "username and password are required", "invalid_request")
		return
	}

	user, err := ac.service.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
	case IsValidationError(err):
		abortJSON(c, http.StatusBadRequest, err.Error(), "invalid_request")
		return
	case errors.Is(err, ErrUserExists):
		abortJSON(c, http.StatusConflict, "username already taken", "conflict")
		return
	default:
		ac.logger.Error("registration failed", "error", err)
		abortJSON(c, http.StatusInternalServerError, "internal server error", "internal_error")
		return
	}

	if !ac.startSession(c, user.ID, user.Username) {
		return
	}

	ac.logger.Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and starts a session.
func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, "username and password are required", "invalid_request")
		return
	}

	clientIP := c.ClientIP()
	if allowed, retryAfter := ac.rateLimiter.Allow(clientIP, req.Username); !allowed {
		metrics.ObserveLogin(metrics.LoginRateLimited)
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		abortJSON(c, http.StatusTooManyRequests, "too many login attempts", "rate_limited")
		return
	}

	user, err := ac.service.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			ac.rateLimiter.RecordFailure(clientIP, req.Username)
			metrics.ObserveLogin(metrics.LoginFailure)
			abortJSON(c, http.StatusUnauthorized, ErrInvalidCredentials.Error(), "unauthorized")
			return
		}
		ac.logger.Error("login failed", "error", err)
		abortJSON(c, http.StatusInternalServerError, "internal server error", "internal_error")
		return
	}
	ac.rateLimiter.RecordSuccess(clientIP, req.Username)
	metrics.ObserveLogin(metrics.LoginSuccess)

	if !ac.startSession(c, user.ID, user.Username) {
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout destroys the current session.
func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessionManager != nil {
		if err := ac.sessionManager.DestroySession(c.Request.Context()); err != nil {
			ac.logger.Error("failed to destroy session", "error", err)
		}
	}
	c.Status(http.StatusNoContent)
}

// CurrentUser returns the authenticated user.
func (ac *AuthController) CurrentUser(c *gin.Context) {
	user, ok := ac.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// IssueToken returns a bearer token for the authenticated user.
func (ac *AuthController) IssueToken(c *gin.Context) {
	if ac.tokens == nil {
		abortJSON(c, http.StatusNotFound, "bearer tokens are disabled", "not_found")
		return
	}

	user, ok := ac.currentUser(c)
	if !ok {
		return
	}

	token, expiresAt, err := ac.tokens.Issue(user)
	if err != nil {
		ac.logger.Error("failed to issue token", "error", err)
		abortJSON(c, http.StatusInternalServerError, "internal server error", "internal_error")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}

// CSRFToken returns the token clients send back in X-CSRF-Token.
func (ac *AuthController) CSRFToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"token": GetCSRFToken(c)})
}

// currentUser loads the caller, answering 401 if the account is gone and 500
// if the store fails.
func (ac *AuthController) currentUser(c *gin.Context) (*entities.User, bool) {
	user, err := ac.service.GetUserByID(c.Request.Context(), GetUserID(c))
	switch {
	case err == nil:
		return user, true
	case errors.Is(err, ErrUserNotFound):
		abortJSON(c, http.StatusUnauthorized, ErrAuthRequired.Error(), "unauthorized")
	default:
		ac.logger.Error("failed to load current user", "error", err)
		abortJSON(c, http.StatusInternalServerError, "internal server error", "internal_error")
	}
	return nil, false
}

func (ac *AuthController) startSession(c *gin.Context, userID uint, username string) bool {
	if ac.sessionManager == nil {
		return true
	}
	if err := ac.sessionManager.CreateSession(c.Request.Context(), userID, username); err != nil {
		ac.logger.Error("failed to create session", "error", err)
		abortJSON(c, http.StatusInternalServerError, "internal server error", "internal_error")
		return false
	}
	return true
}

func abortJSON(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}
