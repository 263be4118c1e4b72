package auth

import (
	"context"
	"database/sql"
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/wordbook/internal/config"
)

// Session data keys
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
	SessionKeyLoginAt  = "login_at"
)

func init() {
	// Register types that will be stored in sessions
	gob.Register(time.Time{})
}

var sessionTableDDL = map[config.StorageBackend][]string{
	config.StorageBackendSQLite: {
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry)`,
	},
	config.StorageBackendPostgres: {
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BYTEA NOT NULL,
			expiry TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)`,
	},
}

// NewSessionStore picks the scs store for the deployment. A Redis client wins
// over the SQL backend; the memory backend keeps sessions in process.
func NewSessionStore(backend config.StorageBackend, sqlDB *sql.DB, redisClient *redis.Client) (scs.Store, error) {
	if redisClient != nil {
		return goredisstore.New(redisClient), nil
	}

	switch backend {
	case config.StorageBackendMemory:
		return memstore.New(), nil
	case config.StorageBackendSQLite, config.StorageBackendPostgres:
		if sqlDB == nil {
			return nil, fmt.Errorf("session store for %q requires a database connection", backend)
		}
		for _, stmt := range sessionTableDDL[backend] {
			if _, err := sqlDB.Exec(stmt); err != nil {
				return nil, fmt.Errorf("failed to create sessions table: %w", err)
			}
		}
		if backend == config.StorageBackendPostgres {
			return postgresstore.New(sqlDB), nil
		}
		return sqlite3store.New(sqlDB), nil
	default:
		return nil, fmt.Errorf("unsupported session backend %q", backend)
	}
}

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager on top of store.
func NewSessionManager(store scs.Store, cfg config.Auth) *SessionManager {
	sm := scs.New()
	sm.Store = store

	// Configure session lifetime
	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2 // Half of lifetime for inactivity

	// Configure cookie security
	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}
}

// CreateSession starts an authenticated session for the user.
func (sm *SessionManager) CreateSession(ctx context.Context, userID uint, username string) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}

	// Store user ID as int to match GetInt() retrieval
	sm.Put(ctx, SessionKeyUserID, int(userID))
	sm.Put(ctx, SessionKeyUsername, username)
	sm.Put(ctx, SessionKeyLoginAt, time.Now())

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(ctx context.Context) error {
	return sm.Destroy(ctx)
}

// GetUserID retrieves the user ID from the session.
// Returns 0 if not authenticated.
func (sm *SessionManager) GetUserID(ctx context.Context) uint {
	return uint(sm.GetInt(ctx, SessionKeyUserID))
}

// GetUsername retrieves the username from the session.
func (sm *SessionManager) GetUsername(ctx context.Context) string {
	return sm.GetString(ctx, SessionKeyUsername)
}

// IsAuthenticated returns true if the request has a valid session.
func (sm *SessionManager) IsAuthenticated(ctx context.Context) bool {
	return sm.GetUserID(ctx) != 0
}

// SessionData holds the session information for a request.
type SessionData struct {
	UserID   uint
	Username string
	LoginAt  time.Time
}

// GetSessionData retrieves all session data at once.
func (sm *SessionManager) GetSessionData(ctx context.Context) *SessionData {
	userID := sm.GetUserID(ctx)
	if userID == 0 {
		return nil
	}

	loginAt, _ := sm.Get(ctx, SessionKeyLoginAt).(time.Time)

	return &SessionData{
		UserID:   userID,
		Username: sm.GetUsername(ctx),
		LoginAt:  loginAt,
	}
}
