package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlan(t *testing.T) {
	content := `
tasks:
  - title: Write report
    description: quarterly
    start: "2024-06-03 09:00"
    duration: 1h
  - title: Inbox zero
epics:
  - title: Release
    subtasks:
      - title: Tag
        status: done
      - title: Announce
        status: in-progress
        start: "2024-06-03T10:00:00Z"
        duration: 15m
`
	plan, err := ParsePlan([]byte(content))
	require.NoError(t, err)

	require.Len(t, plan.Tasks, 2)
	assert.Equal(t, "Write report", plan.Tasks[0].Title)
	assert.Equal(t, "quarterly", plan.Tasks[0].Description)
	assert.Equal(t, StatusNew, plan.Tasks[0].Status)
	require.NotNil(t, plan.Tasks[0].Schedule)
	assert.True(t, plan.Tasks[0].Schedule.Start.Equal(time.Date(2024, 6, 3, 9, 0, 0, 0, time.Local)))
	assert.Equal(t, time.Hour, plan.Tasks[0].Schedule.Duration)
	assert.Nil(t, plan.Tasks[1].Schedule)

	require.Len(t, plan.Epics, 1)
	epic := plan.Epics[0]
	assert.Equal(t, "Release", epic.Title)
	require.Len(t, epic.Subtasks, 2)
	assert.Equal(t, StatusDone, epic.Subtasks[0].Status)
	assert.Equal(t, StatusInProgress, epic.Subtasks[1].Status)
	require.NotNil(t, epic.Subtasks[1].Schedule)
	assert.True(t, epic.Subtasks[1].Schedule.Start.Equal(time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)))

	assert.Equal(t, 5, plan.Size())
}

func TestParsePlan_Errors(t *testing.T) {
	tests := []struct {
		want    error
		name    string
		content string
	}{
		{name: "empty", content: "  \n", want: ErrEmptyFile},
		{name: "comment only", content: "# nothing\n", want: ErrNoItemsInFile},
		{name: "no items", content: "tasks: []\n", want: ErrNoItemsInFile},
		{name: "missing title", content: "tasks:\n  - description: x\n", want: ErrEmptyTitle},
		{name: "missing epic title", content: "epics:\n  - subtasks: []\n", want: ErrEmptyTitle},
		{name: "bad status", content: "tasks:\n  - title: a\n    status: later\n", want: ErrInvalidStatus},
		{name: "start only", content: "tasks:\n  - title: a\n    start: \"2024-06-03 09:00\"\n", want: ErrIncompleteSchedule},
		{name: "duration only", content: "tasks:\n  - title: a\n    duration: 1h\n", want: ErrIncompleteSchedule},
		{name: "negative duration", content: "tasks:\n  - title: a\n    start: \"2024-06-03 09:00\"\n    duration: -1h\n", want: ErrNegativeDuration},
		{
			name:    "subtask error",
			content: "epics:\n  - title: e\n    subtasks:\n      - title: \"\"\n",
			want:    ErrEmptyTitle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParsePlan_RejectsUnknownKeys(t *testing.T) {
	_, err := ParsePlan([]byte("tasks:\n  - title: a\n    priority: high\n"))
	assert.Error(t, err)
}

func TestParsePlan_BadStartTime(t *testing.T) {
	_, err := ParsePlan([]byte("tasks:\n  - title: a\n    start: tomorrow\n    duration: 1h\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task 1")
	assert.Contains(t, err.Error(), "invalid start time")
}

func TestParseStartTime(t *testing.T) {
	got, err := ParseStartTime(" 2024-06-03 09:15 ")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 6, 3, 9, 15, 0, 0, time.Local)))

	got, err = ParseStartTime("2024-06-03T09:15:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 6, 3, 7, 15, 0, 0, time.UTC)))

	_, err = ParseStartTime("09:15")
	assert.Error(t, err)
}
