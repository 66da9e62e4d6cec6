package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskboard/internal/domain"
)

// parseItemID parses "12" or "#12".
func parseItemID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid item ID %q", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("item ID must be positive")
	}
	return id, nil
}

// scheduleFlags binds --start and --duration. The pointers returned by
// values are nil for flags the user did not set.
type scheduleFlags struct {
	start    string
	duration time.Duration
}

func (f *scheduleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", `Start time ("2006-01-02 15:04", local time)`)
	cmd.Flags().DurationVar(&f.duration, "duration", 0, "Duration (e.g. 30m, 1h30m)")
}

func (f *scheduleFlags) values(cmd *cobra.Command) (*time.Time, *time.Duration, error) {
	var start *time.Time
	var d *time.Duration
	if cmd.Flags().Changed("start") {
		t, err := domain.ParseStartTime(f.start)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if cmd.Flags().Changed("duration") {
		v := f.duration
		d = &v
	}
	return start, d, nil
}

// parseStatusFlag returns nil for an empty flag value.
func parseStatusFlag(s string) (*domain.Status, error) {
	if s == "" {
		return nil, nil
	}
	st, err := domain.ParseStatus(s)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func kindLabel(k domain.Kind) string {
	return strings.ToLower(string(k))
}

func formatTime(s domain.Summary, t time.Time) string {
	if !s.Scheduled {
		return "-"
	}
	return t.Format(domain.TimeLayout)
}

func formatDuration(s domain.Summary) string {
	if !s.Scheduled {
		return "-"
	}
	return s.Duration.String()
}

// printItemList prints items in a tab-aligned table.
func printItemList(w io.Writer, items []domain.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tEPIC\tSTART\tEND\tTITLE")
	for _, it := range items {
		epicStr := "-"
		if it.EpicID != 0 {
			epicStr = strconv.Itoa(it.EpicID)
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			it.Kind,
			it.Status,
			epicStr,
			formatTime(it, it.Start),
			formatTime(it, it.End),
			it.Title,
		)
	}
}

// printItemDetail prints one item and, for epics, its subtasks.
func printItemDetail(w io.Writer, it domain.Summary, subtasks []domain.Summary) {
	_, _ = fmt.Fprintf(w, "%s #%d: %s\n", it.Kind, it.ID, it.Title)
	_, _ = fmt.Fprintf(w, "Status: %s\n", it.Status.Display())
	if it.EpicID != 0 {
		_, _ = fmt.Fprintf(w, "Epic: #%d\n", it.EpicID)
	}
	_, _ = fmt.Fprintf(w, "Start: %s\n", formatTime(it, it.Start))
	_, _ = fmt.Fprintf(w, "End: %s\n", formatTime(it, it.End))
	_, _ = fmt.Fprintf(w, "Duration: %s\n", formatDuration(it))

	if it.Description != "" {
		_, _ = fmt.Fprintln(w, "\nDescription:")
		for _, line := range strings.Split(it.Description, "\n") {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}

	if it.Kind == domain.KindEpic {
		_, _ = fmt.Fprintf(w, "\nSubtasks (%d):\n", len(subtasks))
		for _, s := range subtasks {
			_, _ = fmt.Fprintf(w, "  #%d [%s] %s (%s)\n", s.ID, s.Status, s.Title, formatTime(s, s.Start))
		}
	}
}

// itemJSON is the JSON view of an item.
type itemJSON struct {
	Start       *time.Time    `json:"start,omitempty"`
	End         *time.Time    `json:"end,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Kind        domain.Kind   `json:"type"`
	Status      domain.Status `json:"status"`
	Duration    string        `json:"duration,omitempty"`
	Subtasks    []itemJSON    `json:"subtasks,omitempty"`
	ID          int           `json:"id"`
	EpicID      int           `json:"epicId,omitempty"`
}

func toItemJSON(s domain.Summary) itemJSON {
	out := itemJSON{
		ID:          s.ID,
		Kind:        s.Kind,
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Status,
		EpicID:      s.EpicID,
	}
	if s.Scheduled {
		start, end := s.Start, s.End
		out.Start = &start
		out.End = &end
		out.Duration = s.Duration.String()
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func itemsJSON(items []domain.Summary) []itemJSON {
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, toItemJSON(it))
	}
	return out
}
