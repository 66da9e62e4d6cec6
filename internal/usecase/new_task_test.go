package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/testutil"
)

func TestNewTask_Execute_Success(t *testing.T) {
	// Setup
	store := testutil.NewMemoryStore()
	logger := &testutil.MockLogger{}
	uc := NewNewTask(newTestBoard(store), logger)

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{
		Title:       "Write report",
		Description: "quarterly",
		Start:       ptr(at(9, 0)),
		Duration:    ptr(time.Hour),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.Task.ID)
	assert.Equal(t, domain.StatusNew, out.Task.Status)
	assert.True(t, out.Task.Scheduled)
	assert.Equal(t, at(10, 0), out.Task.End)

	snap := store.Snapshot()
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "quarterly", snap.Tasks[0].Description)
	assert.Equal(t, 2, snap.NextID)

	require.Len(t, logger.Entries, 1)
	assert.Equal(t, 1, logger.Entries[0].ItemID)
	assert.Contains(t, logger.Entries[0].Msg, `created: "Write report"`)
}

func TestNewTask_Execute_Unscheduled(t *testing.T) {
	store := testutil.NewMemoryStore()
	uc := NewNewTask(newTestBoard(store), nil)

	out, err := uc.Execute(context.Background(), NewTaskInput{Title: "Inbox", Status: domain.StatusDone})

	require.NoError(t, err)
	assert.False(t, out.Task.Scheduled)
	assert.Equal(t, domain.StatusDone, out.Task.Status)
}

func TestNewTask_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		want error
		name string
		in   NewTaskInput
	}{
		{name: "empty title", in: NewTaskInput{Title: "  "}, want: domain.ErrEmptyTitle},
		{name: "start only", in: NewTaskInput{Title: "a", Start: ptr(at(9, 0))}, want: domain.ErrIncompleteSchedule},
		{name: "duration only", in: NewTaskInput{Title: "a", Duration: ptr(time.Hour)}, want: domain.ErrIncompleteSchedule},
		{name: "negative duration", in: NewTaskInput{Title: "a", Start: ptr(at(9, 0)), Duration: ptr(-time.Hour)}, want: domain.ErrNegativeDuration},
		{name: "zero start", in: NewTaskInput{Title: "a", Start: ptr(time.Time{}), Duration: ptr(time.Hour)}, want: domain.ErrZeroStart},
		{name: "bad status", in: NewTaskInput{Title: "a", Status: "LATER"}, want: domain.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMemoryStore()
			uc := NewNewTask(newTestBoard(store), nil)

			_, err := uc.Execute(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, store.SaveCalls)
		})
	}
}

func TestNewTask_Execute_Conflict(t *testing.T) {
	// Setup
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	uc := NewNewTask(newTestBoard(store), nil)

	// Execute
	_, err := uc.Execute(context.Background(), NewTaskInput{
		Title:    "Overlap",
		Start:    ptr(at(9, 30)),
		Duration: ptr(15 * time.Minute),
	})

	// Assert
	var conflict *domain.SchedulingConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, at(9, 30), conflict.Start)
	assert.Equal(t, 0, store.SaveCalls)
	assert.Len(t, store.Snapshot().Tasks, 1)
}

func TestNewTask_Execute_NotInitialized(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.Initialized = false
	uc := NewNewTask(newTestBoard(store), nil)

	_, err := uc.Execute(context.Background(), NewTaskInput{Title: "a"})

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestNewEpic_Execute(t *testing.T) {
	// Setup
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	logger := &testutil.MockLogger{}
	uc := NewNewEpic(newTestBoard(store), logger)

	// Execute
	out, err := uc.Execute(context.Background(), NewEpicInput{Title: "Launch", Description: "q3"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, out.Epic.ID)
	assert.Equal(t, domain.KindEpic, out.Epic.Kind)
	assert.Equal(t, domain.StatusNew, out.Epic.Status)
	assert.False(t, out.Epic.Scheduled)
	assert.Len(t, store.Snapshot().Epics, 3)
	assert.Equal(t, []string{`created: "Launch"`}, logger.Messages())
}

func TestNewEpic_Execute_EmptyTitle(t *testing.T) {
	uc := NewNewEpic(newTestBoard(testutil.NewMemoryStore()), nil)

	_, err := uc.Execute(context.Background(), NewEpicInput{})

	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestNewSubtask_Execute(t *testing.T) {
	// Setup
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	uc := NewNewSubtask(newTestBoard(store), nil)

	// Execute
	out, err := uc.Execute(context.Background(), NewSubtaskInput{
		Title:    "Announce",
		EpicID:   2,
		Status:   domain.StatusDone,
		Start:    ptr(at(11, 0)),
		Duration: ptr(15 * time.Minute),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, out.Subtask.ID)
	assert.Equal(t, 2, out.Subtask.EpicID)
	assert.Equal(t, 2, out.Epic.ID)
	assert.Equal(t, domain.StatusInProgress, out.Epic.Status)
	assert.Equal(t, at(10, 0), out.Epic.Start)
	assert.Equal(t, at(11, 15), out.Epic.End)
	assert.Equal(t, 45*time.Minute, out.Epic.Duration)
	assert.Len(t, store.Snapshot().Subtasks, 2)
}

func TestNewSubtask_Execute_UnknownEpic(t *testing.T) {
	// Setup
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	uc := NewNewSubtask(newTestBoard(store), nil)

	// Execute: #1 is a task, not an epic
	_, err := uc.Execute(context.Background(), NewSubtaskInput{Title: "x", EpicID: 1})

	// Assert
	assert.ErrorIs(t, err, domain.ErrEpicNotFound)
	assert.Equal(t, 0, store.SaveCalls)
	assert.Equal(t, 5, store.Snapshot().NextID)
}
