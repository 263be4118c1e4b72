package interfaces

// Compile-time checks that concrete types satisfy the interfaces consumed in
// other packages. Same-package checks live next to their types.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/wordbook/internal/database"
	"github.com/mrlokans/wordbook/internal/exporters"
	"github.com/mrlokans/wordbook/internal/http"
	"github.com/mrlokans/wordbook/internal/scheduler"
	"github.com/mrlokans/wordbook/internal/storage"
	"github.com/mrlokans/wordbook/internal/tasks"
)

// =============================================================================
// Background work
// =============================================================================

// UserLister implementations
var _ scheduler.UserLister = (*database.Database)(nil)
var _ scheduler.UserLister = (*storage.MemoryStore)(nil)

// Enqueuer/TaskQueue implementations
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

// DeckExporter implementations
var _ tasks.DeckExporter = (*exporters.DeckExporter)(nil)
