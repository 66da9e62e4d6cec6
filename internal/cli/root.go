// Package cli provides the command-line interface for taskboard.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskboard/internal/app"
	"github.com/runoshun/taskboard/internal/tui"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupItems = "items"
	groupViews = "views"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

func launchTUI(c *app.Container) error {
	if c == nil {
		return errors.New("taskboard is not available outside a data directory")
	}
	return tui.Run(c)
}

// NewRootCommand creates the root command for taskboard.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskboard",
		Short: "Task, epic and calendar slot tracker",
		Long: `taskboard tracks tasks, epics and their subtasks, and books them on a
15-minute slot calendar so that no two scheduled items overlap.

Running taskboard without a command opens the interactive agenda.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupItems, Title: "Item Management:"},
		&cobra.Group{ID: groupViews, Title: "Views:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupSetup

	// Item management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupItems

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupItems

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupItems

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupItems

	clearCmd := newClearCommand(c)
	clearCmd.GroupID = groupItems

	// Views
	listCmd := newListCommand(c)
	listCmd.GroupID = groupViews

	agendaCmd := newAgendaCommand(c)
	agendaCmd.GroupID = groupViews

	historyCmd := newHistoryCommand(c)
	historyCmd.GroupID = groupViews

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupViews

	root.AddCommand(
		initCmd,
		configCmd,
		importCmd,
		newCmd,
		editCmd,
		showCmd,
		rmCmd,
		clearCmd,
		listCmd,
		agendaCmd,
		historyCmd,
		tuiCmd,
	)

	return root
}
