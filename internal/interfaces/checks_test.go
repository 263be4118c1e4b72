package interfaces

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/wordbook/internal/database"
	"github.com/mrlokans/wordbook/internal/exporters"
	"github.com/mrlokans/wordbook/internal/http"
	"github.com/mrlokans/wordbook/internal/scheduler"
	"github.com/mrlokans/wordbook/internal/storage"
	"github.com/mrlokans/wordbook/internal/tasks"
)

func TestStorageImplementations(t *testing.T) {
	assert.Implements(t, (*storage.Store)(nil), new(database.Database))
	assert.Implements(t, (*storage.Store)(nil), new(storage.MemoryStore))
	assert.Implements(t, (*storage.Maintenance)(nil), new(database.Database))
	assert.Implements(t, (*scheduler.UserLister)(nil), new(storage.MemoryStore))
}

func TestTaskImplementations(t *testing.T) {
	assert.Implements(t, (*http.TaskQueue)(nil), new(tasks.Client))
	assert.Implements(t, (*scheduler.Enqueuer)(nil), new(tasks.Client))
	assert.Implements(t, (*tasks.DeckExporter)(nil), new(exporters.DeckExporter))
}
