package entrypoint

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/config"
)

func TestOpenBackend_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Backend: config.StorageBackendMemory}}

	backend, err := OpenBackend(cfg)
	require.NoError(t, err)
	defer backend.Close()

	assert.Nil(t, backend.SQL)
	assert.NoError(t, backend.Pinger.Ping(context.Background()))
}

func TestOpenBackend_SQLite(t *testing.T) {
	cfg := &config.Config{
		Storage:  config.Storage{Backend: config.StorageBackendSQLite},
		Database: config.Database{Path: filepath.Join(t.TempDir(), "wordbook.db"), LogLevel: "silent"},
	}

	backend, err := OpenBackend(cfg)
	require.NoError(t, err)

	require.NotNil(t, backend.SQL)
	ctx := context.Background()
	user, err := backend.Store.CreateUser(ctx, "hanako", "hash")
	require.NoError(t, err)
	ids, err := backend.Maintenance.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{user.ID}, ids)

	require.NoError(t, backend.Close())
	assert.Error(t, backend.Pinger.Ping(ctx))
}

func TestOpenBackend_PostgresWithoutDSN(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Backend: config.StorageBackendPostgres}}

	_, err := OpenBackend(cfg)
	assert.ErrorContains(t, err, "DATABASE_DSN")
}

func TestSigningSecret(t *testing.T) {
	t.Run("hex", func(t *testing.T) {
		secret, err := signingSecret("00ff10")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0xff, 0x10}, secret)
	})

	t.Run("raw", func(t *testing.T) {
		secret, err := signingSecret("not-hex-at-all")
		require.NoError(t, err)
		assert.Equal(t, []byte("not-hex-at-all"), secret)
	})

	t.Run("generated", func(t *testing.T) {
		first, err := signingSecret("")
		require.NoError(t, err)
		second, err := signingSecret("")
		require.NoError(t, err)

		assert.Len(t, first, 32)
		assert.NotEqual(t, first, second)
	})
}
