package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2/memstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/storage"
)

const testPassword = "correct-horse-battery"

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuthConfig() config.Auth {
	return config.Auth{
		SessionLifetime:  24 * time.Hour,
		TokenExpiry:      time.Hour,
		BcryptCost:       4,
		SecureCookies:    false,
		MaxLoginAttempts: 3,
		RateLimitWindow:  15 * time.Minute,
		LockoutDuration:  30 * time.Minute,
	}
}

type testStack struct {
	router   *gin.Engine
	store    *storage.MemoryStore
	service  *Service
	sessions *SessionManager
	tokens   *TokenIssuer
}

// newTestStack wires the auth routes the way the HTTP router does, without CSRF.
func newTestStack(t *testing.T) *testStack {
	t.Helper()

	cfg := testAuthConfig()
	store := storage.NewMemoryStore()
	svc := NewService(store, cfg)
	sm := NewSessionManager(memstore.New(), cfg)
	tokens := NewTokenIssuer([]byte("test-signing-secret-32-bytes-long"), cfg.TokenExpiry)

	controller := NewAuthController(svc, sm, tokens, cfg)
	t.Cleanup(controller.Stop)

	router := gin.New()
	router.Use(sm.SessionLoadSave())
	router.Use(NewMiddleware(svc, sm, tokens).Handler())

	api := router.Group("/api")
	controller.RegisterRoutes(api)
	api.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "auth_type": GetAuthType(c)})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return &testStack{router: router, store: store, service: svc, sessions: sm, tokens: tokens}
}

func (s *testStack) do(t *testing.T, method, path string, body any, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(req)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func withCookies(cookies []*http.Cookie) func(*http.Request) {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func credentials(username, password string) map[string]string {
	return map[string]string{"username": username, "password": password}
}

// testUser is never stored; tokens issued for it name a missing user.
var testUser = entities.User{ID: 4242, Username: "ghost"}
