package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2/memstore"
	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/auth"
	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/exporters"
	"github.com/mrlokans/wordbook/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuthConfig() config.Auth {
	return config.Auth{
		SessionLifetime:  24 * time.Hour,
		TokenExpiry:      time.Hour,
		BcryptCost:       4,
		SecureCookies:    false,
		MaxLoginAttempts: 5,
		RateLimitWindow:  15 * time.Minute,
		LockoutDuration:  30 * time.Minute,
	}
}

// fakeQueue records enqueued tasks and reports them as pending.
type fakeQueue struct {
	mu    sync.Mutex
	tasks map[string]backlite.Task
	err   error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{tasks: make(map[string]backlite.Task)}
}

func (q *fakeQueue) Enqueue(task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	id := fmt.Sprintf("task-%d", len(q.tasks)+1)
	q.tasks[id] = task
	return id, nil
}

func (q *fakeQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.tasks[taskID]; !ok {
		return backlite.TaskStatusNotFound, nil
	}
	return backlite.TaskStatusPending, nil
}

type testEnv struct {
	router  *Router
	store   *storage.MemoryStore
	service *auth.Service
	tokens  *auth.TokenIssuer
	queue   *fakeQueue
}

type envOption func(*RouterConfig)

func withCSRF(cfg *RouterConfig) {
	cfg.CSRFSecret = []byte("csrf-secret-that-is-32-bytes-ok!")
}

func withoutTaskQueue(cfg *RouterConfig) {
	cfg.TaskQueue = nil
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	authCfg := testAuthConfig()
	store := storage.NewMemoryStore()
	service := auth.NewService(store, authCfg)
	tokens := auth.NewTokenIssuer([]byte("test-signing-secret-32-bytes-long"), authCfg.TokenExpiry)
	queue := newFakeQueue()

	cfg := RouterConfig{
		Store:          store,
		Exporter:       exporters.NewDeckExporter(store, t.TempDir()),
		AuthService:    service,
		SessionManager: auth.NewSessionManager(memstore.New(), authCfg),
		Tokens:         tokens,
		AuthConfig:     authCfg,
		TaskQueue:      queue,
		MetricsEnabled: true,
		Version:        "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	router := NewRouter(cfg)
	t.Cleanup(router.Close)

	return &testEnv{router: router, store: store, service: service, tokens: tokens, queue: queue}
}

// user registers a user and returns its id and a bearer token.
func (e *testEnv) user(t *testing.T, username string) (uint, string) {
	t.Helper()

	u, err := e.service.Register(context.Background(), username, "correct-horse-battery")
	require.NoError(t, err)
	token, _, err := e.tokens.Issue(u)
	require.NoError(t, err)
	return u.ID, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
