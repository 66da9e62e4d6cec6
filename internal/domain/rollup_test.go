package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sub(status Status, start time.Time, d time.Duration) *Subtask {
	s := NewSubtask("s", "", 1)
	s.Status = status
	if d > 0 {
		_ = s.SetSchedule(start, d)
	}
	return s
}

func TestRollupStatus(t *testing.T) {
	tests := []struct {
		name     string
		children []*Subtask
		want     Status
	}{
		{"empty", nil, StatusNew},
		{"only nil", []*Subtask{nil}, StatusNew},
		{"all new", []*Subtask{sub(StatusNew, nineAM, 0), sub(StatusNew, nineAM, 0)}, StatusNew},
		{"all done", []*Subtask{sub(StatusDone, nineAM, 0)}, StatusDone},
		{"mixed", []*Subtask{sub(StatusNew, nineAM, 0), sub(StatusDone, nineAM, 0)}, StatusInProgress},
		{"in progress", []*Subtask{sub(StatusInProgress, nineAM, 0)}, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RollupStatus(tt.children))
		})
	}
}

func TestEpic_Recompute(t *testing.T) {
	// Setup
	epic := NewEpic("e", "")
	children := []*Subtask{
		sub(StatusDone, nineAM.Add(2*time.Hour), time.Hour),
		sub(StatusNew, nineAM, 0),
		sub(StatusDone, nineAM, 15*time.Minute),
	}

	// Execute
	epic.Recompute(children)

	// Assert
	assert.Equal(t, StatusInProgress, epic.Status())
	start, ok := epic.StartTime()
	require.True(t, ok)
	assert.Equal(t, nineAM, start)
	end, ok := epic.EndTime()
	require.True(t, ok)
	assert.Equal(t, nineAM.Add(3*time.Hour), end)
	d, ok := epic.Duration()
	require.True(t, ok)
	assert.Equal(t, 75*time.Minute, d)

	summary := epic.Summary()
	assert.True(t, summary.Scheduled)
	assert.Equal(t, KindEpic, summary.Kind)

	// Dropping every scheduled child clears the window
	epic.Recompute(children[1:2])
	_, ok = epic.StartTime()
	assert.False(t, ok)
	assert.Equal(t, StatusNew, epic.Status())
}
