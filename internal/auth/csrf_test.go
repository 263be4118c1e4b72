package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/entities"
)

var csrfTestSecret = []byte("test-secret-key-32-bytes-long!!!")

func newCSRFRouter(tokens *TokenIssuer) *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(csrfTestSecret, false, tokens))
	router.GET("/api/csrf", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": GetCSRFToken(c)})
	})
	router.POST("/api/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCSRFMiddleware_SkipsValidBearer(t *testing.T) {
	tokens := NewTokenIssuer([]byte("signing-secret"), time.Hour)
	token, _, err := tokens.Issue(&entities.User{ID: 1, Username: "hanako"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	router := newCSRFRouter(tokens)

	req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for valid Bearer request, got %d", rr.Code)
	}
}

func TestCSRFMiddleware_InvalidBearerStillChecked(t *testing.T) {
	router := newCSRFRouter(NewTokenIssuer([]byte("signing-secret"), time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for forged Bearer request, got %d", rr.Code)
	}
}

func TestCSRFMiddleware_AllowsGET(t *testing.T) {
	router := newCSRFRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/csrf", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for GET request, got %d", rr.Code)
	}
}

func TestCSRFMiddleware_BlocksPOSTWithoutToken(t *testing.T) {
	router := newCSRFRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for POST without CSRF token, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON error body, got content type %q", ct)
	}
}

func TestCSRFMiddleware_AllowsPOSTWithToken(t *testing.T) {
	var token string
	router := gin.New()
	router.Use(CSRFMiddleware(csrfTestSecret, false, nil))
	router.GET("/api/csrf", func(c *gin.Context) {
		token = GetCSRFToken(c)
		c.Status(http.StatusOK)
	})
	router.POST("/api/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/csrf", nil))
	if token == "" {
		t.Fatal("Expected CSRF token to be set in context")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
	req.Header.Set(CSRFTokenHeader, token)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for POST with CSRF token, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGetCSRFToken_NoToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if token := GetCSRFToken(c); token != "" {
		t.Errorf("Expected empty token, got %s", token)
	}
}
