package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/testutil"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

func newTestBoard(store *testutil.MemoryStore) *shared.Board {
	clock := &testutil.MockClock{NowTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return shared.NewBoard(store, nil, clock)
}

func at(h, m int) time.Time {
	return time.Date(2024, 6, 3, h, m, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

// seedBoard stores task #1 (9:00-10:00), epic #2 with subtask #3 (10:00-10:30)
// and an empty epic #4.
func seedBoard(t *testing.T, store *testutil.MemoryStore) {
	t.Helper()
	task := domain.RestoreTask(1, "Write report", "", domain.StatusNew)
	require.NoError(t, task.SetSchedule(at(9, 0), time.Hour))
	sub := domain.RestoreSubtask(3, "Tag", "", domain.StatusInProgress, 2)
	require.NoError(t, sub.SetSchedule(at(10, 0), 30*time.Minute))
	store.Seed(&domain.Snapshot{
		Tasks: []*domain.Task{task},
		Epics: []*domain.Epic{
			domain.RestoreEpic(2, "Release", "", domain.StatusNew),
			domain.RestoreEpic(4, "Empty", "", domain.StatusNew),
		},
		Subtasks: []*domain.Subtask{sub},
		NextID:   5,
	})
}
