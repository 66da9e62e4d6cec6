package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/taskboard/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Status colors
	New        lipgloss.Color
	InProgress lipgloss.Color
	Done       lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow

	New:        lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Done:       lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App lipgloss.Style

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Item rows
	ItemID             lipgloss.Style
	ItemTitle          lipgloss.Style
	ItemTitleSelected  lipgloss.Style
	ItemTime           lipgloss.Style
	SelectionIndicator lipgloss.Style

	// Status
	StatusNew        lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusDone       lipgloss.Style

	// Footer and messages
	Footer lipgloss.Style
	Empty  lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected).
			Background(Colors.Primary).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),

		ItemID:             lipgloss.NewStyle().Foreground(Colors.Muted),
		ItemTitle:          lipgloss.NewStyle().Foreground(Colors.TitleNormal),
		ItemTitleSelected:  lipgloss.NewStyle().Foreground(Colors.TitleSelected).Bold(true),
		ItemTime:           lipgloss.NewStyle().Foreground(Colors.Muted),
		SelectionIndicator: lipgloss.NewStyle().Foreground(Colors.Primary),

		StatusNew:        lipgloss.NewStyle().Foreground(Colors.New),
		StatusInProgress: lipgloss.NewStyle().Foreground(Colors.InProgress),
		StatusDone:       lipgloss.NewStyle().Foreground(Colors.Done),

		Footer: lipgloss.NewStyle().Foreground(Colors.Muted).MarginTop(1),
		Empty:  lipgloss.NewStyle().Foreground(Colors.Muted).Italic(true),
		Error:  lipgloss.NewStyle().Foreground(Colors.Error).Bold(true),
	}
}

// StatusStyle returns the style for a status.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusNew:
		return s.StatusNew
	case domain.StatusInProgress:
		return s.StatusInProgress
	case domain.StatusDone:
		return s.StatusDone
	default:
		return s.ItemID
	}
}

// StatusIcon returns a one-cell icon for a status.
func StatusIcon(status domain.Status) string {
	switch status {
	case domain.StatusNew:
		return "○"
	case domain.StatusInProgress:
		return "◐"
	case domain.StatusDone:
		return "●"
	default:
		return "?"
	}
}
