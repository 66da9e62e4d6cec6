package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the number of lines taken by padding, tabs and footer.
const chromeHeight = 7

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := max(msg.Height-chromeHeight, 1)
		listWidth := max(msg.Width-4, 20)
		m.agenda.SetSize(listWidth, listHeight)
		m.history.SetSize(listWidth, listHeight)
		return m, nil

	case MsgAgendaLoaded:
		m.err = nil
		return m, m.agenda.SetItems(toRows(msg.Items))

	case MsgHistoryLoaded:
		m.err = nil
		return m, m.history.SetItems(toRows(msg.Items))

	case MsgError:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = m.tab.Next()
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = m.tab.Prev()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadAll()
	case key.Matches(msg, m.keys.Up):
		m.activeList().CursorUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.activeList().CursorDown()
		return m, nil
	}

	l := m.activeList()
	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return m, cmd
}

func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) {
		m.mode = ModeNormal
	}
	return m, nil
}
