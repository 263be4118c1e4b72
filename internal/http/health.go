package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/wordbook/internal/storage"
)

const healthCheckTimeout = 2 * time.Second

var errStoreNotConfigured = errors.New("not configured")

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	store   storage.Pinger
	redis   *redis.Client
	version string
}

// NewHealthController creates a HealthController. redisClient is optional.
func NewHealthController(store storage.Pinger, redisClient *redis.Client, version string) *HealthController {
	return &HealthController{
		store:   store,
		redis:   redisClient,
		version: version,
	}
}

// Status handles GET /health
func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"

	if err := h.pingStore(ctx); err != nil {
		checks["database"] = "error: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["redis"] = "ok"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// Ping handles GET /ping. It only checks the store.
func (h *HealthController) Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.pingStore(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "storage unavailable", CodeUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *HealthController) pingStore(ctx context.Context) error {
	if h.store == nil {
		return errStoreNotConfigured
	}
	return h.store.Ping(ctx)
}
