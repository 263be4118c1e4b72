package storage

import (
	"context"
	"errors"

	"github.com/mrlokans/wordbook/internal/entities"
)

var (
	// ErrNotFound is returned by writes whose target does not exist for the owner.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("record already exists")
	// ErrUnknownCategory is returned when a word references a category the
	// owner does not have.
	ErrUnknownCategory = errors.New("unknown category")
)

// UserStore covers user registration and lookup. Users are not owner-scoped.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*entities.User, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
}

// CategoryStore covers owner-scoped category operations.
type CategoryStore interface {
	ListCategories(ctx context.Context, ownerID uint) ([]entities.Category, error)
	GetCategory(ctx context.Context, id, ownerID uint) (*entities.Category, error)
	CreateCategory(ctx context.Context, ownerID uint, in NewCategory) (*entities.Category, error)
	UpdateCategory(ctx context.Context, id, ownerID uint, upd CategoryUpdate) (*entities.Category, error)
	DeleteCategory(ctx context.Context, id, ownerID uint) error
}

// WordStore covers owner-scoped word operations.
type WordStore interface {
	// ListWords returns the owner's words, optionally narrowed to one category.
	ListWords(ctx context.Context, ownerID uint, categoryID *uint) ([]entities.Word, error)
	GetWord(ctx context.Context, id, ownerID uint) (*entities.Word, error)
	CreateWord(ctx context.Context, ownerID uint, in NewWord) (*entities.Word, error)
	UpdateWord(ctx context.Context, id, ownerID uint, upd WordUpdate) (*entities.Word, error)
	DeleteWord(ctx context.Context, id, ownerID uint) error
}

// Store is the full contract consumed by the HTTP layer.
type Store interface {
	UserStore
	CategoryStore
	WordStore
}

// Maintenance is implemented by stores that support background upkeep.
type Maintenance interface {
	ListUserIDs(ctx context.Context) ([]uint, error)
	RepairCategoryRefs(ctx context.Context) (int64, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
