package http

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/wordbook/internal/auth"
	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/exporters"
	"github.com/mrlokans/wordbook/internal/storage"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Store    storage.Store
	Pinger   storage.Pinger
	Exporter *exporters.DeckExporter

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	Tokens         *auth.TokenIssuer
	AuthConfig     config.Auth

	// CSRFSecret enables CSRF protection for cookie sessions when non-empty.
	CSRFSecret []byte

	// Task queue (optional). Leave nil, not a typed nil, when disabled.
	TaskQueue TaskQueue

	// Redis is checked by /health when sessions live there (optional).
	Redis *redis.Client

	MetricsEnabled bool
	Logger         *slog.Logger

	// Application info
	Version string
}
