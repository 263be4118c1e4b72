package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/tasks"
)

type recordingQueue struct {
	mu     sync.Mutex
	tasks  []backlite.Task
	failOn uint
}

func (q *recordingQueue) Enqueue(task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if export, ok := task.(tasks.ExportDeckTask); ok && q.failOn != 0 && export.UserID == q.failOn {
		return "", errors.New("queue is full")
	}
	q.tasks = append(q.tasks, task)
	return "task-id", nil
}

func (q *recordingQueue) recorded() []backlite.Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]backlite.Task(nil), q.tasks...)
}

type staticUsers []uint

func (u staticUsers) ListUserIDs(ctx context.Context) ([]uint, error) {
	return u, nil
}

func TestRunNow_Export(t *testing.T) {
	queue := &recordingQueue{}
	s := New(queue, staticUsers{1, 2, 3}, Config{})

	require.NoError(t, s.RunNow(context.Background(), JobExport))

	assert.Equal(t, []backlite.Task{
		tasks.ExportDeckTask{UserID: 1},
		tasks.ExportDeckTask{UserID: 2},
		tasks.ExportDeckTask{UserID: 3},
	}, queue.recorded())
}

func TestRunNow_ExportContinuesAfterFailure(t *testing.T) {
	queue := &recordingQueue{failOn: 2}
	s := New(queue, staticUsers{1, 2, 3}, Config{})

	err := s.RunNow(context.Background(), JobExport)
	assert.ErrorContains(t, err, "queue is full")
	assert.Len(t, queue.recorded(), 2)
}

func TestRunNow_Integrity(t *testing.T) {
	queue := &recordingQueue{}
	s := New(queue, staticUsers{}, Config{})

	require.NoError(t, s.RunNow(context.Background(), JobIntegrity))
	assert.Equal(t, []backlite.Task{tasks.RepairCategoryRefsTask{}}, queue.recorded())
}

func TestRunNow_UnknownJob(t *testing.T) {
	s := New(&recordingQueue{}, staticUsers{}, Config{})

	err := s.RunNow(context.Background(), "reindex")
	assert.True(t, errors.Is(err, ErrUnknownJob))
}

func TestStart_NoSchedules(t *testing.T) {
	s := New(&recordingQueue{}, staticUsers{}, Config{})

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun(JobExport))
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := New(&recordingQueue{}, staticUsers{}, Config{ExportSchedule: "every day"})

	err := s.Start(context.Background())
	assert.ErrorContains(t, err, "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestStartStop(t *testing.T) {
	s := New(&recordingQueue{}, staticUsers{}, Config{
		ExportSchedule:    "0 3 * * *",
		IntegritySchedule: "30 4 * * *",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	next := s.NextRun(JobExport)
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	next = s.NextRun(JobIntegrity)
	require.NotNil(t, next)
	assert.Equal(t, 30, next.Minute())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun(JobExport))
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	s := New(&recordingQueue{}, staticUsers{}, Config{IntegritySchedule: "*/5 * * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		expr  string
		valid bool
	}{
		{"0 3 * * *", true},
		{"*/15 * * * *", true},
		{"0 0 1 * 1-5", true},
		{"@daily", false},
		{"0 0 3 * * *", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := ValidateSchedule(tt.expr)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
