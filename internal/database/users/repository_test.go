package users

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/storage"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_users_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_CreateUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.CreateUser(context.Background(), "testuser", "$2a$04$hash")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "$2a$04$hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRepository_CreateUser_Duplicate(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CreateUser(context.Background(), "testuser", "hash-1")
	require.NoError(t, err)

	_, err = repo.CreateUser(context.Background(), "testuser", "hash-2")

	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestRepository_CreateUser_UniqueIndex(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CreateUser(context.Background(), "testuser", "hash-1")
	require.NoError(t, err)

	// Bypass the pre-check to hit the unique index directly.
	err = repo.db.Create(&entities.User{Username: "testuser", PasswordHash: "hash-2"}).Error

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRepository_GetUserByID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.CreateUser(context.Background(), "testuser", "hash")
	require.NoError(t, err)

	user, err := repo.GetUserByID(context.Background(), created.ID)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "testuser", user.Username)
}

func TestRepository_GetUserByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.GetUserByID(context.Background(), 999)

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestRepository_GetUserByUsername(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.CreateUser(context.Background(), "testuser", "hash")
	require.NoError(t, err)

	user, err := repo.GetUserByUsername(context.Background(), "testuser")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
}

func TestRepository_GetUserByUsername_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.GetUserByUsername(context.Background(), "nonexistent")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestRepository_ListUserIDs(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	a, err := repo.CreateUser(context.Background(), "alpha", "hash")
	require.NoError(t, err)
	b, err := repo.CreateUser(context.Background(), "beta", "hash")
	require.NoError(t, err)

	ids, err := repo.ListUserIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, ids)
}
