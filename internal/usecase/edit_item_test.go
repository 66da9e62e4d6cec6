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

func TestEditItem_Execute_TaskFields(t *testing.T) {
	// Setup
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	logger := &testutil.MockLogger{}
	uc := NewEditItem(newTestBoard(store), logger)

	// Execute
	out, err := uc.Execute(context.Background(), EditItemInput{
		ID:          1,
		Title:       ptr("Final report"),
		Description: ptr("v2"),
		Status:      ptr(domain.StatusInProgress),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Final report", out.Item.Title)
	assert.Equal(t, "v2", out.Item.Description)
	assert.Equal(t, domain.StatusInProgress, out.Item.Status)
	assert.Equal(t, at(9, 0), out.Item.Start, "schedule untouched")

	snap := store.Snapshot()
	assert.Equal(t, "Final report", snap.Tasks[0].Title)
	require.Len(t, logger.Entries, 1)
	assert.Equal(t, "task", logger.Entries[0].Category)
}

func TestEditItem_Execute_PartialScheduleKeepsOtherHalf(t *testing.T) {
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	uc := NewEditItem(newTestBoard(store), nil)

	out, err := uc.Execute(context.Background(), EditItemInput{ID: 1, Duration: ptr(30 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, at(9, 0), out.Item.Start)
	assert.Equal(t, 30*time.Minute, out.Item.Duration)

	out, err = uc.Execute(context.Background(), EditItemInput{ID: 1, Start: ptr(at(13, 0))})
	require.NoError(t, err)
	assert.Equal(t, at(13, 0), out.Item.Start)
	assert.Equal(t, 30*time.Minute, out.Item.Duration)
}

func TestEditItem_Execute_OverlapWithItselfIsFine(t *testing.T) {
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	uc := NewEditItem(newTestBoard(store), nil)

	// 9:00-10:00 moves to 9:15-9:45, inside its own old booking
	out, err := uc.Execute(context.Background(), EditItemInput{
		ID:       1,
		Start:    ptr(at(9, 15)),
		Duration: ptr(30 * time.Minute),
	})

	require.NoError(t, err)
	assert.Equal(t, at(9, 45), out.Item.End)
}

func TestEditItem_Execute_PartialScheduleOnUnscheduledTask(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.Seed(&domain.Snapshot{
		Tasks:  []*domain.Task{domain.RestoreTask(1, "a", "", domain.StatusNew)},
		NextID: 2,
	})
	uc := NewEditItem(newTestBoard(store), nil)

	_, err := uc.Execute(context.Background(), EditItemInput{ID: 1, Start: ptr(at(9, 0))})

	assert.ErrorIs(t, err, domain.ErrIncompleteSchedule)
	assert.Equal(t, 0, store.SaveCalls)
}

func TestEditItem_Execute_Unschedule(t *testing.T) {
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	uc := NewEditItem(newTestBoard(store), nil)

	out, err := uc.Execute(context.Background(), EditItemInput{ID: 1, Unschedule: true})

	require.NoError(t, err)
	assert.False(t, out.Item.Scheduled)
	assert.Nil(t, store.Snapshot().Tasks[0].Schedule)
}

func TestEditItem_Execute_Conflict(t *testing.T) {
	// Setup
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	uc := NewEditItem(newTestBoard(store), nil)

	// Execute: push the task into the subtask's 10:00-10:30 slot
	_, err := uc.Execute(context.Background(), EditItemInput{ID: 1, Start: ptr(at(9, 30))})

	// Assert
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)
	assert.Equal(t, 0, store.SaveCalls)
	assert.Equal(t, at(9, 0), store.Snapshot().Tasks[0].Schedule.Start)
}

func TestEditItem_Execute_SubtaskRecomputesEpic(t *testing.T) {
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	uc := NewEditItem(newTestBoard(store), nil)

	out, err := uc.Execute(context.Background(), EditItemInput{ID: 3, Status: ptr(domain.StatusDone)})

	require.NoError(t, err)
	assert.Equal(t, domain.KindSubtask, out.Item.Kind)
	assert.Equal(t, domain.StatusDone, out.Item.Status)
	assert.Equal(t, 2, out.Epic.ID)
	assert.Equal(t, domain.StatusDone, out.Epic.Status)
}

func TestEditItem_Execute_Epic(t *testing.T) {
	store := testutil.NewMemoryStore()
	seedBoard(t, store)
	uc := NewEditItem(newTestBoard(store), nil)

	out, err := uc.Execute(context.Background(), EditItemInput{ID: 2, Title: ptr("Release 2")})
	require.NoError(t, err)
	assert.Equal(t, "Release 2", out.Item.Title)
	assert.Equal(t, domain.StatusInProgress, out.Item.Status)
	assert.Equal(t, domain.Summary{}, out.Epic)

	for _, in := range []EditItemInput{
		{ID: 2, Status: ptr(domain.StatusDone)},
		{ID: 2, Start: ptr(at(8, 0))},
		{ID: 2, Duration: ptr(time.Hour)},
		{ID: 2, Unschedule: true},
	} {
		_, err := uc.Execute(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrEpicDerived)
	}
}

func TestEditItem_Execute_InputErrors(t *testing.T) {
	tests := []struct {
		want error
		name string
		in   EditItemInput
	}{
		{name: "no fields", in: EditItemInput{ID: 1}, want: domain.ErrNoFieldsToUpdate},
		{name: "empty title", in: EditItemInput{ID: 1, Title: ptr("")}, want: domain.ErrEmptyTitle},
		{name: "unschedule with start", in: EditItemInput{ID: 1, Unschedule: true, Start: ptr(at(9, 0))}, want: domain.ErrUnscheduleConflict},
		{name: "bad status", in: EditItemInput{ID: 1, Status: ptr(domain.Status("LATER"))}, want: domain.ErrInvalidStatus},
		{name: "not found", in: EditItemInput{ID: 99, Title: ptr("x")}, want: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMemoryStore()
			seedBoard(t, store)
			uc := NewEditItem(newTestBoard(store), nil)

			_, err := uc.Execute(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, store.SaveCalls)
		})
	}
}
