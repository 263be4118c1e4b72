package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/wordbook/internal/tasks"
)

// Job names accepted by RunNow and NextRun.
const (
	JobExport    = "export"
	JobIntegrity = "integrity"
)

var ErrUnknownJob = errors.New("unknown job")

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer hands tasks to the background queue.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// UserLister returns the ids a periodic export fans out over.
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]uint, error)
}

// Config holds the cron expressions. An empty expression disables the job.
type Config struct {
	ExportSchedule    string
	IntegritySchedule string
}

// Scheduler enqueues deck exports and category reference repairs on cron
// schedules. Jobs only enqueue; the work runs on the task queue.
type Scheduler struct {
	queue  Enqueuer
	users  UserLister
	config Config
	logger *slog.Logger

	cron      *cron.Cron
	entries   map[string]cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func New(queue Enqueuer, users UserLister, cfg Config) *Scheduler {
	return &Scheduler{
		queue:   queue,
		users:   users,
		config:  cfg,
		logger:  slog.Default().With("component", "scheduler"),
		cron:    cron.New(cron.WithParser(parser)),
		entries: make(map[string]cron.EntryID),
	}
}

// ValidateSchedule reports whether expr is a five-field cron expression.
func ValidateSchedule(expr string) error {
	_, err := parser.Parse(expr)
	return err
}

// Start registers the configured jobs and starts the cron runner. It stops
// the runner when ctx is cancelled. Starting with no schedules is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	jobs := map[string]string{
		JobExport:    s.config.ExportSchedule,
		JobIntegrity: s.config.IntegritySchedule,
	}
	for name, expr := range jobs {
		if expr == "" {
			s.logger.Info("job disabled", "job", name)
			continue
		}
		if err := ValidateSchedule(expr); err != nil {
			return fmt.Errorf("invalid cron schedule %q for %s: %w", expr, name, err)
		}
		job := name
		id, err := s.cron.AddFunc(expr, func() {
			if err := s.run(context.Background(), job); err != nil {
				s.logger.Error("scheduled job failed", "job", job, "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", name, err)
		}
		s.entries[name] = id
	}

	if len(s.entries) == 0 {
		return nil
	}

	s.cron.Start()
	s.isRunning = true

	for name, id := range s.entries {
		s.logger.Info("job scheduled", "job", name, "schedule", jobs[name], "next_run", s.cron.Entry(id).Next)
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the cron runner and waits for running jobs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("scheduler stopped")
}

// RunNow runs a job immediately, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, job string) error {
	return s.run(ctx, job)
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the job fires next, or nil if it is not scheduled.
func (s *Scheduler) NextRun(job string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	id, ok := s.entries[job]
	if !ok {
		return nil
	}
	next := s.cron.Entry(id).Next
	return &next
}

func (s *Scheduler) run(ctx context.Context, job string) error {
	switch job {
	case JobExport:
		return s.enqueueExports(ctx)
	case JobIntegrity:
		id, err := s.queue.Enqueue(tasks.RepairCategoryRefsTask{})
		if err != nil {
			return err
		}
		s.logger.Info("integrity sweep enqueued", "task_id", id)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownJob, job)
	}
}

// enqueueExports queues one export per user. A failed enqueue does not stop
// the remaining users; the first error is returned.
func (s *Scheduler) enqueueExports(ctx context.Context) error {
	ids, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	var firstErr error
	enqueued := 0
	for _, userID := range ids {
		if _, err := s.queue.Enqueue(tasks.ExportDeckTask{UserID: userID}); err != nil {
			s.logger.Error("failed to enqueue export", "user_id", userID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		enqueued++
	}

	s.logger.Info("exports enqueued", "users", len(ids), "enqueued", enqueued)
	return firstErr
}
