package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/taskboard/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// It is the same as running taskboard without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long: `Launch the interactive terminal user interface.

The TUI shows the agenda and the view history read-only.
Use tab to switch between them and r to reload.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}
