package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/taskboard/internal/domain"
)

type itemRow struct {
	item domain.Summary
}

func (r itemRow) FilterValue() string {
	return r.item.Title
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// timeRange formats the booked interval of an item, or "-" when unscheduled.
func timeRange(s domain.Summary) string {
	if !s.Scheduled {
		return "-"
	}
	end := s.End.Format("15:04")
	if s.End.YearDay() != s.Start.YearDay() || s.End.Year() != s.Start.Year() {
		end = s.End.Format(domain.TimeLayout)
	}
	return s.Start.Format(domain.TimeLayout) + "-" + end
}

type itemDelegate struct {
	styles Styles
}

func newItemDelegate(styles Styles) itemDelegate {
	return itemDelegate{styles: styles}
}

func (d itemDelegate) Height() int {
	return 1
}

func (d itemDelegate) Spacing() int {
	return 0
}

func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render writes one row: indicator, id, status icon, time range, title.
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(itemRow)
	if !ok {
		return
	}
	it := row.item
	selected := index == m.Index()

	indicatorChar := " "
	titleStyle := d.styles.ItemTitle
	if selected {
		indicatorChar = ">"
		titleStyle = d.styles.ItemTitleSelected
	}

	idStr := fmt.Sprintf("%4s", fmt.Sprintf("#%d", it.ID))
	timeStr := fmt.Sprintf("%-28s", timeRange(it))

	prefixWidth := 2 + 1 + 1 + runewidth.StringWidth(idStr) + 2 + 1 + 1 + runewidth.StringWidth(timeStr) + 1
	maxTitleLen := m.Width() - prefixWidth
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title := escapeNewlines(it.Title)
	if runewidth.StringWidth(title) > maxTitleLen {
		title = runewidth.Truncate(title, maxTitleLen, "...")
	}

	line := "  " + d.styles.SelectionIndicator.Render(indicatorChar) + " " +
		d.styles.ItemID.Render(idStr) + "  " +
		d.styles.StatusStyle(it.Status).Render(StatusIcon(it.Status)) + " " +
		d.styles.ItemTime.Render(timeStr) + " " +
		titleStyle.Render(title)
	_, _ = fmt.Fprint(w, line)
}
