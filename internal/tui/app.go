package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskboard/internal/app"
	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies
	container *app.Container
	err       error

	// Components
	keys    KeyMap
	styles  Styles
	help    help.Model
	agenda  list.Model
	history list.Model

	// Numeric state
	mode   Mode
	tab    Tab
	width  int
	height int
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	styles := DefaultStyles()
	return &Model{
		container: c,
		keys:      DefaultKeyMap(),
		styles:    styles,
		help:      help.New(),
		agenda:    newItemList(styles),
		history:   newItemList(styles),
		mode:      ModeNormal,
		tab:       TabAgenda,
	}
}

func newItemList(styles Styles) list.Model {
	l := list.New([]list.Item{}, newItemDelegate(styles), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// Run starts the TUI and blocks until the user quits.
func Run(c *app.Container) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadAll()
}

func (m *Model) loadAll() tea.Cmd {
	return tea.Batch(m.loadAgenda(), m.loadHistory())
}

// loadAgenda returns a command that reads the agenda from the store.
func (m *Model) loadAgenda() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowAgendaUseCase().Execute(context.Background(), usecase.ShowAgendaInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgAgendaLoaded{Items: out.Items}
	}
}

// loadHistory returns a command that reads the history from the store.
func (m *Model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowHistoryUseCase().Execute(context.Background(), usecase.ShowHistoryInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgHistoryLoaded{Items: out.Items}
	}
}

// activeList returns the list model of the current tab.
func (m *Model) activeList() *list.Model {
	if m.tab == TabHistory {
		return &m.history
	}
	return &m.agenda
}

// SelectedItem returns the highlighted item of the current tab.
func (m *Model) SelectedItem() (domain.Summary, bool) {
	row, ok := m.activeList().SelectedItem().(itemRow)
	if !ok {
		return domain.Summary{}, false
	}
	return row.item, true
}

// Tab returns the current tab.
func (m *Model) Tab() Tab {
	return m.tab
}

func toRows(items []domain.Summary) []list.Item {
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{item: it})
	}
	return rows
}
