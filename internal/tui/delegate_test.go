package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/stretchr/testify/assert"

	"github.com/runoshun/taskboard/internal/domain"
)

func TestTimeRange(t *testing.T) {
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		want string
		item domain.Summary
	}{
		{
			name: "unscheduled",
			item: domain.Summary{},
			want: "-",
		},
		{
			name: "same day",
			item: domain.Summary{Scheduled: true, Start: start, End: start.Add(90 * time.Minute)},
			want: "2024-06-03 09:00-10:30",
		},
		{
			name: "crosses midnight",
			item: domain.Summary{Scheduled: true, Start: start.Add(14 * time.Hour), End: start.Add(16 * time.Hour)},
			want: "2024-06-03 23:00-2024-06-04 01:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeRange(tt.item))
		})
	}
}

func TestEscapeNewlines(t *testing.T) {
	assert.Equal(t, "a b c d", escapeNewlines("a\nb\r\nc\rd"))
}

func TestItemDelegate_RenderTruncatesTitle(t *testing.T) {
	// Setup
	d := newItemDelegate(DefaultStyles())
	items := []list.Item{itemRow{item: domain.Summary{
		ID:     7,
		Kind:   domain.KindTask,
		Status: domain.StatusNew,
		Title:  strings.Repeat("long title ", 20),
	}}}
	l := list.New(items, d, 60, 5)

	// Execute
	var buf bytes.Buffer
	d.Render(&buf, l, 0, items[0])

	// Assert
	out := buf.String()
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, ">")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, "\n")
}

func TestItemDelegate_RenderIgnoresForeignItems(t *testing.T) {
	d := newItemDelegate(DefaultStyles())
	l := list.New(nil, d, 60, 5)

	var buf bytes.Buffer
	d.Render(&buf, l, 0, nil)

	assert.Empty(t, buf.String())
}
