package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskboard/internal/app"
	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/usecase"
)

// newAgendaCommand creates the agenda command.
func newAgendaCommand(c *app.Container) *cobra.Command {
	var opts struct {
		From string
		To   string
		JSON bool
	}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "List scheduled tasks and subtasks by start time",
		Long: `List scheduled tasks and subtasks ordered by start time.

Epics never appear; their subtasks do. --from and --to narrow the list to
items starting in [from, to).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input usecase.ShowAgendaInput
			if opts.From != "" {
				t, err := domain.ParseStartTime(opts.From)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				input.From = t
			}
			if opts.To != "" {
				t, err := domain.ParseStartTime(opts.To)
				if err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				input.To = t
			}

			out, err := c.ShowAgendaUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), itemsJSON(out.Items))
			}
			printItemList(cmd.OutOrStdout(), out.Items)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", `Earliest start time ("2006-01-02 15:04")`)
	cmd.Flags().StringVar(&opts.To, "to", "", `Exclusive upper bound for start times`)
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// newHistoryCommand creates the history command.
func newHistoryCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently viewed items",
		Long: `List recently viewed items, oldest first.

Showing an item with 'taskboard show' records it. Viewing an item again
moves it to the end of the list.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowHistoryUseCase().Execute(cmd.Context(), usecase.ShowHistoryInput{})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), itemsJSON(out.Items))
			}
			printItemList(cmd.OutOrStdout(), out.Items)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")

	return cmd
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create items from a YAML plan",
		Long: `Create tasks, epics and subtasks from a YAML plan file.

The import is all-or-nothing: if any item fails (for example because it
overlaps a booked interval) nothing is saved.

File format:
  tasks:
    - title: Write report
      start: "2024-06-03 09:00"
      duration: 1h
  epics:
    - title: Release
      subtasks:
        - title: Tag
          status: done
        - title: Announce
          start: "2024-06-03 10:00"
          duration: 30m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			out, err := c.ImportPlanUseCase().Execute(cmd.Context(), usecase.ImportPlanInput{
				Content: content,
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if dryRun {
				_, _ = fmt.Fprintln(w, "Dry run - items that would be created:")
			}
			for _, it := range out.Items {
				_, _ = fmt.Fprintf(w, "%s #%d: %s\n", kindLabel(it.Kind), it.ID, it.Title)
			}
			if !dryRun {
				_, _ = fmt.Fprintf(w, "Imported %d items\n", len(out.Items))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the plan without saving")

	return cmd
}
