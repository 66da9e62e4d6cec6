package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskboard/internal/app"
	"github.com/runoshun/taskboard/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the taskboard data directory",
		Long: `Initialize the taskboard data directory.

This command creates the store selected by [store] type (csv by default)
and a commented config.toml in the data directory. The data directory is
$TASKBOARD_DIR, or .taskboard under the current directory.

Error conditions:
- Already initialized: "taskboard already initialized"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitStoreUseCase().Execute(cmd.Context(), usecase.InitStoreInput{
				Config: c.AppConfig,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Initialized taskboard in %s\n", c.Config.DataDir)
			if out.ConfigCreated {
				_, _ = fmt.Fprintf(w, "Created config file: %s\n", out.ConfigPath)
			}
			return nil
		},
	}
}
