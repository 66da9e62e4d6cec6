package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/history"
	"github.com/runoshun/taskboard/internal/tracker"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "tasks.csv"))
	require.NoError(t, store.Initialize())
	return store
}

func sampleSnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()
	task := domain.RestoreTask(1, "Report, quarterly", "multi\nline \"quoted\"", domain.StatusInProgress)
	require.NoError(t, task.SetSchedule(time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC), 30*time.Minute))
	sub := domain.RestoreSubtask(3, "Tag release", "", domain.StatusDone, 2)
	require.NoError(t, sub.SetSchedule(time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC), time.Hour))
	return &domain.Snapshot{
		Tasks:    []*domain.Task{task},
		Epics:    []*domain.Epic{domain.RestoreEpic(2, "Release", "", domain.StatusInProgress)},
		Subtasks: []*domain.Subtask{sub},
		History:  []int{3, 1},
	}
}

func TestStore_Initialize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.csv")
	store := New(path)
	assert.False(t, store.IsInitialized())

	require.NoError(t, store.Initialize())
	assert.True(t, store.IsInitialized())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID,TYPE,TITLE,STATUS,DESCRIPTION,EPIC_ID,START_TIME,DURATION\n\n\n", string(content))

	// Idempotent
	require.NoError(t, store.Initialize())
}

func TestStore_SaveAndLoad(t *testing.T) {
	// Setup
	store := newTestStore(t)
	snap := sampleSnapshot(t)

	// Execute
	require.NoError(t, store.Save(context.Background(), snap))
	got, err := store.Load(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "Report, quarterly", got.Tasks[0].Title)
	assert.Equal(t, "multi\nline \"quoted\"", got.Tasks[0].Description)
	assert.Equal(t, domain.StatusInProgress, got.Tasks[0].Status)
	assert.True(t, got.Tasks[0].Schedule.Equal(snap.Tasks[0].Schedule))
	require.Len(t, got.Epics, 1)
	assert.Equal(t, "Release", got.Epics[0].Title)
	require.Len(t, got.Subtasks, 1)
	assert.Equal(t, 2, got.Subtasks[0].EpicID())
	assert.True(t, got.Subtasks[0].Schedule.Equal(snap.Subtasks[0].Schedule))
	assert.Equal(t, []int{3, 1}, got.History)
}

func TestEncode_Layout(t *testing.T) {
	snap := &domain.Snapshot{
		Tasks:   []*domain.Task{domain.RestoreTask(1, "a,b", "", domain.StatusNew)},
		Epics:   []*domain.Epic{domain.RestoreEpic(2, "e", "", domain.StatusNew)},
		History: []int{2},
	}

	content, err := Encode(snap)
	require.NoError(t, err)
	want := "ID,TYPE,TITLE,STATUS,DESCRIPTION,EPIC_ID,START_TIME,DURATION\n" +
		"1,TASK,\"a,b\",NEW,,,,\n" +
		"2,EPIC,e,NEW,,,,\n" +
		"\n" +
		"2\n"
	assert.Equal(t, want, string(content))
}

func TestDecode_Legacy(t *testing.T) {
	content := "ID,TYPE,TITLE,STATUS,DESCRIPTION,EPIC_ID(ONLY_FOR_SUBTASKS)\n" +
		"1,TASK,TaskTitle_1,NEW,TaskDesc_1,\n" +
		"2,EPIC,EpicTitle_2,NEW,EpicDesc_2,\n" +
		"3,SUBTASK,SubtaskTitle_3,DONE,SubtaskDesc_3,2\n"

	snap, err := Decode([]byte(content))
	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)
	assert.Nil(t, snap.Tasks[0].Schedule)
	require.Len(t, snap.Subtasks, 1)
	assert.Equal(t, 2, snap.Subtasks[0].EpicID())
	assert.Empty(t, snap.History)
}

func TestDecode_LocalStartLayout(t *testing.T) {
	content := "ID,TYPE,TITLE,STATUS,DESCRIPTION,EPIC_ID,START_TIME,DURATION\n" +
		"1,TASK,t,NEW,,,2024-03-04 09:15,15m\n"

	snap, err := Decode([]byte(content))
	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)
	want := time.Date(2024, time.March, 4, 9, 15, 0, 0, time.Local)
	assert.True(t, snap.Tasks[0].Schedule.Start.Equal(want))
	assert.Equal(t, 15*time.Minute, snap.Tasks[0].Schedule.Duration)
}

func TestDecode_Empty(t *testing.T) {
	snap, err := Decode(nil)
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestDecode_Malformed(t *testing.T) {
	const header = "ID,TYPE,TITLE,STATUS,DESCRIPTION,EPIC_ID,START_TIME,DURATION\n"
	tests := []struct {
		name    string
		content string
		field   string
		line    int
	}{
		{"missing header", "1,TASK,t,NEW,,,,\n", "HEADER", 1},
		{"unknown type", header + "1,TASK,t,NEW,,,,\n2,STORY,t,NEW,,,,\n", "TYPE", 3},
		{"unknown status", header + "1,TASK,t,BLOCKED,,,,\n", "STATUS", 2},
		{"bad id", header + "x,TASK,t,NEW,,,,\n", "ID", 2},
		{"bad epic id", header + "1,SUBTASK,t,NEW,,two,,\n", "EPIC_ID", 2},
		{"bad start", header + "1,TASK,t,NEW,,,tomorrow,15m\n", "START_TIME", 2},
		{"bad duration", header + "1,TASK,t,NEW,,,2024-03-04T09:00:00Z,long\n", "DURATION", 2},
		{"wrong column count", header + "1,TASK,t\n", "", 2},
		{"bad history", header + "1,TASK,t,NEW,,,,\n\n1,x\n", "HISTORY", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Decode([]byte(tt.content))
			assert.Nil(t, snap)
			require.ErrorIs(t, err, domain.ErrMalformedRecord)
			var mre *domain.MalformedRecordError
			require.ErrorAs(t, err, &mre)
			assert.Equal(t, tt.field, mre.Field)
			assert.Equal(t, tt.line, mre.Line)
		})
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "none.csv"))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestEncode_NextID(t *testing.T) {
	snap := &domain.Snapshot{
		Tasks:  []*domain.Task{domain.RestoreTask(1, "t", "", domain.StatusNew)},
		NextID: 3,
	}

	content, err := Encode(snap)
	require.NoError(t, err)
	want := "ID,TYPE,TITLE,STATUS,DESCRIPTION,EPIC_ID,START_TIME,DURATION\n" +
		"1,TASK,t,NEW,,,,\n" +
		"\n" +
		"\n" +
		"NEXT_ID,3\n"
	assert.Equal(t, want, string(content))
}

func TestDecode_Trailer(t *testing.T) {
	const header = "ID,TYPE,TITLE,STATUS,DESCRIPTION,EPIC_ID,START_TIME,DURATION\n"
	tests := []struct {
		name        string
		content     string
		wantHistory []int
		wantNextID  int
	}{
		{"history and counter", header + "1,TASK,t,NEW,,,,\n\n1\nNEXT_ID,7\n", []int{1}, 7},
		{"counter without history", header + "1,TASK,t,NEW,,,,\n\n\nNEXT_ID,7\n", nil, 7},
		{"history only", header + "1,TASK,t,NEW,,,,\n\n1\n", []int{1}, 0},
		{"no items", header + "\n\nNEXT_ID,4\n", nil, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Decode([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.wantHistory, snap.History)
			assert.Equal(t, tt.wantNextID, snap.NextID)
		})
	}
}

func TestDecode_MalformedTrailer(t *testing.T) {
	const header = "ID,TYPE,TITLE,STATUS,DESCRIPTION,EPIC_ID,START_TIME,DURATION\n"
	tests := []struct {
		name    string
		content string
		field   string
		line    int
	}{
		{"bad counter", header + "1,TASK,t,NEW,,,,\n\n1\nNEXT_ID,x\n", "NEXT_ID", 5},
		{"zero counter", header + "1,TASK,t,NEW,,,,\n\n1\nNEXT_ID,0\n", "NEXT_ID", 5},
		{"stray line", header + "1,TASK,t,NEW,,,,\n\n1\n2,3\n", "", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Decode([]byte(tt.content))
			assert.Nil(t, snap)
			var mre *domain.MalformedRecordError
			require.ErrorAs(t, err, &mre)
			assert.Equal(t, tt.field, mre.Field)
			assert.Equal(t, tt.line, mre.Line)
		})
	}
}

func TestStore_IdentityNotReusedAfterDeletingMax(t *testing.T) {
	// Setup
	store := newTestStore(t)
	ctx := context.Background()
	tr := tracker.New(tracker.Options{History: history.New(0)})
	require.NoError(t, tr.CreateTask(domain.NewTask("first", "")))
	second := domain.NewTask("second", "")
	require.NoError(t, tr.CreateTask(second))
	require.NoError(t, tr.DeleteTask(second.ID))
	require.NoError(t, store.Save(ctx, tr.Snapshot()))

	// Execute
	snap, err := store.Load(ctx)
	require.NoError(t, err)
	reloaded, err := tracker.Restore(snap, tracker.Options{History: history.New(0)})
	require.NoError(t, err)
	third := domain.NewTask("third", "")
	require.NoError(t, reloaded.CreateTask(third))

	// Assert
	assert.Equal(t, 3, snap.NextID)
	assert.Equal(t, 3, third.ID)
}
