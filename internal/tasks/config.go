package tasks

import (
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordbook/internal/config"
)

// Config holds configuration for the task queue system.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// MaxRetries is the maximum number of attempts for an export. Default: 3
	MaxRetries int

	// RetryDelay is the backoff between export attempts. Default: 1m
	RetryDelay time.Duration

	// TaskTimeout bounds a single export. Default: 5m
	TaskTimeout time.Duration

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration

	// RetentionDuration is how long finished tasks stay queryable by id. Default: 24h
	RetentionDuration time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        1 * time.Minute,
		TaskTimeout:       5 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}

// ConfigFrom converts the application task settings, falling back to the
// defaults for zero values.
func ConfigFrom(c config.Tasks) Config {
	cfg := DefaultConfig()
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.MaxRetries > 0 {
		cfg.MaxRetries = c.MaxRetries
	}
	if c.RetryDelay > 0 {
		cfg.RetryDelay = c.RetryDelay
	}
	if c.TaskTimeout > 0 {
		cfg.TaskTimeout = c.TaskTimeout
	}
	if c.ReleaseAfter > 0 {
		cfg.ReleaseAfter = c.ReleaseAfter
	}
	if c.CleanupInterval > 0 {
		cfg.CleanupInterval = c.CleanupInterval
	}
	if c.RetentionDuration > 0 {
		cfg.RetentionDuration = c.RetentionDuration
	}
	return cfg
}

// applyRetention overrides the retention period of q. Zero keeps the queue's own.
func (c Config) applyRetention(q backlite.Queue) backlite.Queue {
	if c.RetentionDuration <= 0 {
		return q
	}
	qc := q.Config()
	if qc.Retention == nil {
		qc.Retention = &backlite.Retention{}
	}
	qc.Retention.Duration = c.RetentionDuration
	return q
}

// applyRetries overrides the attempt count, backoff and timeout of q.
// Zero values keep the queue's own settings.
func (c Config) applyRetries(q backlite.Queue) backlite.Queue {
	qc := q.Config()
	if c.MaxRetries > 0 {
		qc.MaxAttempts = c.MaxRetries
	}
	if c.RetryDelay > 0 {
		qc.Backoff = c.RetryDelay
	}
	if c.TaskTimeout > 0 {
		qc.Timeout = c.TaskTimeout
	}
	return q
}
