package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordbook/internal/exporters"
)

// ExportDeckTask writes one user's vocabulary deck to the export directory.
type ExportDeckTask struct {
	UserID uint `json:"user_id"`
}

func (t ExportDeckTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "export_deck",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data: &backlite.RetainData{
				OnlyFailed: true,
			},
		},
	}
}

// DeckExporter is the part of exporters.DeckExporter the queue needs.
type DeckExporter interface {
	ExportUser(ctx context.Context, userID uint) (exporters.ExportResult, error)
}

// ExportDeckProcessor returns the handler for export_deck tasks.
func ExportDeckProcessor(exporter DeckExporter) backlite.QueueProcessor[ExportDeckTask] {
	return func(ctx context.Context, task ExportDeckTask) error {
		logger := slog.Default().With("component", "tasks", "queue", "export_deck", "user_id", task.UserID)

		result, err := exporter.ExportUser(ctx, task.UserID)
		if err != nil {
			logger.Error("deck export failed", "error", err)
			return fmt.Errorf("export deck for user %d: %w", task.UserID, err)
		}

		logger.Debug("export task finished",
			"path", result.Path,
			"words", result.WordsExported,
			"categories", result.CategoriesExported,
		)
		return nil
	}
}

// NewExportDeckQueue builds the export_deck queue with the attempts, timeout
// and retention from cfg.
func NewExportDeckQueue(exporter DeckExporter, cfg Config) backlite.Queue {
	q := backlite.NewQueue(ExportDeckProcessor(exporter))
	return cfg.applyRetention(cfg.applyRetries(q))
}
