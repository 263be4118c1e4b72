package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/database/categories"
	"github.com/mrlokans/wordbook/internal/database/users"
	"github.com/mrlokans/wordbook/internal/database/words"
	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/storage"
)

// Database is the gorm-backed Store. It delegates to the per-domain
// repositories, which can also be used directly.
type Database struct {
	DB *gorm.DB

	Users      *users.Repository
	Categories *categories.Repository
	Words      *words.Repository
}

var (
	_ storage.Store       = (*Database)(nil)
	_ storage.Maintenance = (*Database)(nil)
	_ storage.Pinger      = (*Database)(nil)
)

// Open connects to the configured SQL backend and migrates the schema.
func Open(backend config.StorageBackend, cfg config.Database) (*Database, error) {
	var dialector gorm.Dialector
	switch backend {
	case config.StorageBackendSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	case config.StorageBackendPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres backend requires DATABASE_DSN")
		}
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database backend %q", backend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	slog.Info("database initialized", "backend", backend)

	return New(db), nil
}

// NewDatabase opens a SQLite database at dbPath.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(config.StorageBackendSQLite, config.Database{Path: dbPath, LogLevel: "warn"})
}

// New wraps an already migrated connection.
func New(db *gorm.DB) *Database {
	return &Database{
		DB:         db,
		Users:      users.NewRepository(db),
		Categories: categories.NewRepository(db),
		Words:      words.NewRepository(db),
	}
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entities.User{},
		&entities.Category{},
		&entities.Word{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// --- Users ---

func (d *Database) CreateUser(ctx context.Context, username, passwordHash string) (*entities.User, error) {
	return d.Users.CreateUser(ctx, username, passwordHash)
}

func (d *Database) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	return d.Users.GetUserByID(ctx, id)
}

func (d *Database) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return d.Users.GetUserByUsername(ctx, username)
}

func (d *Database) ListUserIDs(ctx context.Context) ([]uint, error) {
	return d.Users.ListUserIDs(ctx)
}

// --- Categories ---

func (d *Database) ListCategories(ctx context.Context, ownerID uint) ([]entities.Category, error) {
	return d.Categories.ListCategories(ctx, ownerID)
}

func (d *Database) GetCategory(ctx context.Context, id, ownerID uint) (*entities.Category, error) {
	return d.Categories.GetCategory(ctx, id, ownerID)
}

func (d *Database) CreateCategory(ctx context.Context, ownerID uint, in storage.NewCategory) (*entities.Category, error) {
	return d.Categories.CreateCategory(ctx, ownerID, in)
}

func (d *Database) UpdateCategory(ctx context.Context, id, ownerID uint, upd storage.CategoryUpdate) (*entities.Category, error) {
	return d.Categories.UpdateCategory(ctx, id, ownerID, upd)
}

func (d *Database) DeleteCategory(ctx context.Context, id, ownerID uint) error {
	return d.Categories.DeleteCategory(ctx, id, ownerID)
}

// --- Words ---

func (d *Database) ListWords(ctx context.Context, ownerID uint, categoryID *uint) ([]entities.Word, error) {
	return d.Words.ListWords(ctx, ownerID, categoryID)
}

func (d *Database) GetWord(ctx context.Context, id, ownerID uint) (*entities.Word, error) {
	return d.Words.GetWord(ctx, id, ownerID)
}

func (d *Database) CreateWord(ctx context.Context, ownerID uint, in storage.NewWord) (*entities.Word, error) {
	return d.Words.CreateWord(ctx, ownerID, in)
}

func (d *Database) UpdateWord(ctx context.Context, id, ownerID uint, upd storage.WordUpdate) (*entities.Word, error) {
	return d.Words.UpdateWord(ctx, id, ownerID, upd)
}

func (d *Database) DeleteWord(ctx context.Context, id, ownerID uint) error {
	return d.Words.DeleteWord(ctx, id, ownerID)
}

func (d *Database) RepairCategoryRefs(ctx context.Context) (int64, error) {
	return d.Words.RepairCategoryRefs(ctx)
}

// sqliteDSN enables WAL and a busy timeout so concurrent requests wait on
// the write lock instead of failing with SQLITE_BUSY.
func sqliteDSN(path string) string {
	if path == ":memory:" || strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL"
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
