package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordbook/internal/storage"
)

// RepairCategoryRefsTask clears word category references that no longer
// point at a category owned by the word's user.
type RepairCategoryRefsTask struct{}

func (t RepairCategoryRefsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "repair_category_refs",
		MaxAttempts: 1,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
		},
	}
}

func RepairCategoryRefsProcessor(m storage.Maintenance) backlite.QueueProcessor[RepairCategoryRefsTask] {
	return func(ctx context.Context, _ RepairCategoryRefsTask) error {
		logger := slog.Default().With("component", "tasks", "queue", "repair_category_refs")

		repaired, err := m.RepairCategoryRefs(ctx)
		if err != nil {
			return fmt.Errorf("repair category refs: %w", err)
		}
		if repaired > 0 {
			logger.Warn("cleared dangling category references", "words", repaired)
		} else {
			logger.Debug("no dangling category references")
		}
		return nil
	}
}

// NewRepairCategoryRefsQueue builds the repair queue. Only the retention comes
// from cfg: a failed sweep is not retried, the next scheduled run covers it.
func NewRepairCategoryRefsQueue(m storage.Maintenance, cfg Config) backlite.Queue {
	return cfg.applyRetention(backlite.NewQueue(RepairCategoryRefsProcessor(m)))
}
