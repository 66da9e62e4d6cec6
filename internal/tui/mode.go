// Package tui provides the terminal user interface for taskboard.
package tui

// Tab identifies the list shown in the main pane.
type Tab int

const (
	TabAgenda  Tab = iota // Scheduled items by start time
	TabHistory            // Recently viewed items
)

// tabs lists every tab in display order.
var tabs = []Tab{TabAgenda, TabHistory}

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabAgenda:
		return "Agenda"
	case TabHistory:
		return "History"
	default:
		return "unknown"
	}
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	return tabs[(int(t)+1)%len(tabs)]
}

// Prev returns the tab before t, wrapping around.
func (t Tab) Prev() Tab {
	return tabs[(int(t)+len(tabs)-1)%len(tabs)]
}

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota // List navigation
	ModeHelp               // Full help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}
