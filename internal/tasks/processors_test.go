package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/exporters"
	"github.com/mrlokans/wordbook/internal/storage"
)

func TestExportDeckTaskConfig(t *testing.T) {
	cfg := ExportDeckTask{UserID: 7}.Config()

	assert.Equal(t, "export_deck", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Backoff)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestRepairCategoryRefsTaskConfig(t *testing.T) {
	cfg := RepairCategoryRefsTask{}.Config()

	assert.Equal(t, "repair_category_refs", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Timeout)
}

func TestNewExportDeckQueue_UsesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRetries = 5
	cfg.RetryDelay = 10 * time.Second
	cfg.TaskTimeout = time.Minute
	cfg.RetentionDuration = 48 * time.Hour

	qc := NewExportDeckQueue(exporters.NewDeckExporter(storage.NewMemoryStore(), t.TempDir()), cfg).Config()

	assert.Equal(t, "export_deck", qc.Name)
	assert.Equal(t, 5, qc.MaxAttempts)
	assert.Equal(t, 10*time.Second, qc.Backoff)
	assert.Equal(t, time.Minute, qc.Timeout)
	require.NotNil(t, qc.Retention)
	assert.Equal(t, 48*time.Hour, qc.Retention.Duration)
	require.NotNil(t, qc.Retention.Data)
	assert.True(t, qc.Retention.Data.OnlyFailed)
}

func TestNewExportDeckQueue_ZeroConfigKeepsTaskDefaults(t *testing.T) {
	qc := NewExportDeckQueue(exporters.NewDeckExporter(storage.NewMemoryStore(), t.TempDir()), Config{}).Config()

	assert.Equal(t, 3, qc.MaxAttempts)
	assert.Equal(t, 30*time.Second, qc.Backoff)
	assert.Equal(t, 2*time.Minute, qc.Timeout)
	require.NotNil(t, qc.Retention)
	assert.Equal(t, 24*time.Hour, qc.Retention.Duration)
}

func TestNewRepairCategoryRefsQueue_UsesRetentionOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRetries = 5
	cfg.RetentionDuration = 2 * time.Hour

	qc := NewRepairCategoryRefsQueue(&fakeMaintenance{}, cfg).Config()

	assert.Equal(t, "repair_category_refs", qc.Name)
	assert.Equal(t, 1, qc.MaxAttempts)
	assert.Equal(t, 10*time.Minute, qc.Timeout)
	require.NotNil(t, qc.Retention)
	assert.Equal(t, 2*time.Hour, qc.Retention.Duration)
}

func TestExportDeckProcessor(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	user, err := store.CreateUser(ctx, "taro", "hash")
	require.NoError(t, err)
	_, err = store.CreateWord(ctx, user.ID, storage.NewWord{Japanese: "水", Romaji: "mizu", Spanish: "agua"})
	require.NoError(t, err)

	dir := t.TempDir()
	process := ExportDeckProcessor(exporters.NewDeckExporter(store, dir))

	require.NoError(t, process(ctx, ExportDeckTask{UserID: user.ID}))

	content, err := os.ReadFile(filepath.Join(dir, "taro", exporters.DeckFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "| 水 | mizu | agua |")
}

func TestExportDeckProcessor_UnknownUser(t *testing.T) {
	process := ExportDeckProcessor(exporters.NewDeckExporter(storage.NewMemoryStore(), t.TempDir()))

	err := process(context.Background(), ExportDeckTask{UserID: 42})
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

type fakeMaintenance struct {
	repaired int64
	err      error
	calls    int
}

func (f *fakeMaintenance) ListUserIDs(ctx context.Context) ([]uint, error) {
	return nil, nil
}

func (f *fakeMaintenance) RepairCategoryRefs(ctx context.Context) (int64, error) {
	f.calls++
	return f.repaired, f.err
}

func TestRepairCategoryRefsProcessor(t *testing.T) {
	m := &fakeMaintenance{repaired: 2}
	process := RepairCategoryRefsProcessor(m)

	require.NoError(t, process(context.Background(), RepairCategoryRefsTask{}))
	assert.Equal(t, 1, m.calls)

	m.err = errors.New("database is locked")
	err := process(context.Background(), RepairCategoryRefsTask{})
	assert.ErrorContains(t, err, "database is locked")
}
