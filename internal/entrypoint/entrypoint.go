package entrypoint

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/wordbook/internal/auth"
	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/database"
	"github.com/mrlokans/wordbook/internal/exporters"
	http_controllers "github.com/mrlokans/wordbook/internal/http"
	"github.com/mrlokans/wordbook/internal/scheduler"
	"github.com/mrlokans/wordbook/internal/storage"
	"github.com/mrlokans/wordbook/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Backend is the storage selected by STORAGE_BACKEND.
type Backend struct {
	Store       storage.Store
	Maintenance storage.Maintenance
	Pinger      storage.Pinger

	// SQL is the underlying connection for SQL backends, nil for memory.
	SQL *sql.DB

	close func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the configured store. SQL backends are migrated on open.
func OpenBackend(cfg *config.Config) (*Backend, error) {
	if cfg.Storage.Backend == config.StorageBackendMemory {
		store := storage.NewMemoryStore()
		slog.Warn("using in-memory storage, data is lost on restart")
		return &Backend{Store: store, Maintenance: store, Pinger: store}, nil
	}

	db, err := database.Open(cfg.Storage.Backend, cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to get SQL connection: %w", err)
	}
	return &Backend{Store: db, Maintenance: db, Pinger: db, SQL: sqlDB, close: db.Close}, nil
}

// signingSecret decodes AUTH_SESSION_SECRET, generating a random one when it
// is unset. Non-hex values are used as raw bytes.
func signingSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	generated, err := auth.GenerateSigningSecret()
	if err != nil {
		return nil, err
	}
	slog.Warn("generated a session secret, set AUTH_SESSION_SECRET to keep sessions and tokens valid across restarts")
	return generated, nil
}

func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String(), "timeout", timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests before the task queue goes away.
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	slog.Info("server exiting")
	return nil
}

// Run wires every component from cfg and serves until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	slog.SetDefault(cfg.Logging.NewLogger(os.Stderr))
	slog.Info("starting wordbook", "version", version, "storage_backend", cfg.Storage.Backend)

	backend, err := OpenBackend(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing storage", "error", err)
		}
	}()

	var redisClient *redis.Client
	if cfg.Sessions.RedisURL != "" {
		redisClient, err = auth.NewRedisClient(context.Background(), cfg.Sessions.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		slog.Info("sessions stored in redis")
	}

	sessionStore, err := auth.NewSessionStore(cfg.Storage.Backend, backend.SQL, redisClient)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	sessionManager := auth.NewSessionManager(sessionStore, cfg.Auth)

	secret, err := signingSecret(cfg.Auth.SessionSecret)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenIssuer(secret, cfg.Auth.TokenExpiry)
	authService := auth.NewService(backend.Store, cfg.Auth)

	exporter := exporters.NewDeckExporter(backend.Store, cfg.Export.Dir)

	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var sched *scheduler.Scheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.ConfigFrom(cfg.Tasks)
		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				slog.Error("error closing task client", "error", err)
			}
		}()

		taskClient.Register(
			tasks.NewExportDeckQueue(exporter, taskCfg),
			tasks.NewRepairCategoryRefsQueue(backend.Maintenance, taskCfg),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		sched = scheduler.New(taskClient, backend.Maintenance, scheduler.Config{
			ExportSchedule:    cfg.Export.Schedule,
			IntegritySchedule: cfg.Export.IntegritySchedule,
		})
		if err := sched.Start(taskCtx); err != nil {
			taskCtxCancel()
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	} else if cfg.Export.Schedule != "" || cfg.Export.IntegritySchedule != "" {
		slog.Warn("task queue disabled, export and integrity schedules are ignored")
	}

	routerCfg := http_controllers.RouterConfig{
		Store:          backend.Store,
		Pinger:         backend.Pinger,
		Exporter:       exporter,
		AuthService:    authService,
		SessionManager: sessionManager,
		Tokens:         tokens,
		AuthConfig:     cfg.Auth,
		Redis:          redisClient,
		MetricsEnabled: cfg.Metrics.Enabled,
		Logger:         slog.Default(),
		Version:        version,
	}
	if cfg.Auth.CSRFEnabled {
		routerCfg.CSRFSecret = secret
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)
	defer router.Close()

	onShutdown := func(ctx context.Context) {
		if sched != nil {
			sched.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, onShutdown)
}
