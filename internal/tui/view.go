package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	if m.mode == ModeHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return m.styles.App.Render(b.String())
}

// viewTabs renders the tab bar with item counts.
func (m *Model) viewTabs() string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("%s (%d)", t, m.countFor(t))
		if t == m.tab {
			parts = append(parts, m.styles.TabActive.Render(label))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) countFor(t Tab) int {
	if t == TabHistory {
		return len(m.history.Items())
	}
	return len(m.agenda.Items())
}

// viewList renders the current tab, an empty state or the last error.
func (m *Model) viewList() string {
	if m.err != nil {
		return m.styles.Error.Render("Error: " + m.err.Error())
	}
	l := m.activeList()
	if len(l.Items()) == 0 {
		if m.tab == TabHistory {
			return m.styles.Empty.Render("  Nothing viewed yet")
		}
		return m.styles.Empty.Render("  No scheduled items")
	}
	return l.View()
}

func (m *Model) viewFooter() string {
	if m.mode == ModeHelp {
		return m.styles.Footer.Render("? or esc to close help")
	}
	return m.styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
