package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskboard/internal/app"
	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/usecase"
)

// newNewCommand creates the new command with task, epic and subtask subcommands.
func newNewCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a task, epic or subtask",
		Long: `Create a task, epic or subtask.

Tasks and subtasks may be booked on the calendar with --start and --duration,
which must be given together. Booked intervals cannot overlap.
Epics take their status and time window from their subtasks.`,
	}

	cmd.AddCommand(newNewTaskCommand(c))
	cmd.AddCommand(newNewEpicCommand(c))
	cmd.AddCommand(newNewSubtaskCommand(c))

	return cmd
}

func newNewTaskCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Status      string
	}
	var sched scheduleFlags

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create a standalone task",
		Long: `Create a standalone task.

Examples:
  # Create an unscheduled task
  taskboard new task --title "Inbox zero"

  # Book a task for an hour
  taskboard new task --title "Write report" --start "2024-06-03 09:00" --duration 1h`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, d, err := sched.values(cmd)
			if err != nil {
				return err
			}
			status, err := parseStatusFlag(opts.Status)
			if err != nil {
				return err
			}
			input := usecase.NewTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				Start:       start,
				Duration:    d,
			}
			if status != nil {
				input.Status = *status
			}

			out, err := c.NewTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Initial status: new, in_progress, done")
	sched.register(cmd)
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNewEpicCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
	}

	cmd := &cobra.Command{
		Use:   "epic",
		Short: "Create an epic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.NewEpicUseCase().Execute(cmd.Context(), usecase.NewEpicInput{
				Title:       opts.Title,
				Description: opts.Description,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created epic #%d\n", out.Epic.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Epic title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Epic description")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNewSubtaskCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Status      string
		EpicID      int
	}
	var sched scheduleFlags

	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Add a subtask to an epic",
		Long: `Add a subtask to an epic.

Examples:
  taskboard new subtask --epic 2 --title "Tag release" --start "2024-06-03 10:00" --duration 30m`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, d, err := sched.values(cmd)
			if err != nil {
				return err
			}
			status, err := parseStatusFlag(opts.Status)
			if err != nil {
				return err
			}
			input := usecase.NewSubtaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				EpicID:      opts.EpicID,
				Start:       start,
				Duration:    d,
			}
			if status != nil {
				input.Status = *status
			}

			out, err := c.NewSubtaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created subtask #%d in epic #%d (epic status: %s)\n",
				out.Subtask.ID, out.Epic.ID, out.Epic.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Subtask title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Subtask description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Initial status: new, in_progress, done")
	cmd.Flags().IntVar(&opts.EpicID, "epic", 0, "Owning epic ID (required)")
	sched.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("epic")

	return cmd
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Status      string
		Unschedule  bool
	}
	var sched scheduleFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an item",
		Long: `Edit a task, epic or subtask.

Only the given flags are changed. Giving only --start or only --duration keeps
the other half of the current schedule. Epics accept --title and --body only.

Examples:
  taskboard edit 1 --status in_progress
  taskboard edit 1 --start "2024-06-03 13:00"
  taskboard edit 3 --unschedule`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			start, d, err := sched.values(cmd)
			if err != nil {
				return err
			}
			status, err := parseStatusFlag(opts.Status)
			if err != nil {
				return err
			}

			input := usecase.EditItemInput{
				ID:         id,
				Status:     status,
				Start:      start,
				Duration:   d,
				Unschedule: opts.Unschedule,
			}
			if cmd.Flags().Changed("title") {
				input.Title = &opts.Title
			}
			if cmd.Flags().Changed("body") {
				input.Description = &opts.Description
			}

			out, err := c.EditItemUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Updated %s #%d\n", kindLabel(out.Item.Kind), out.Item.ID)
			if out.Epic.ID != 0 {
				_, _ = fmt.Fprintf(w, "Epic #%d is now %s\n", out.Epic.ID, out.Epic.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status: new, in_progress, done")
	cmd.Flags().BoolVar(&opts.Unschedule, "unschedule", false, "Clear start time and duration")
	sched.register(cmd)

	return cmd
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show item details",
		Long: `Show the details of a task, epic or subtask.

Viewing an item records it in the history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			out, err := c.ShowItemUseCase().Execute(cmd.Context(), usecase.ShowItemInput{ID: id})
			if err != nil {
				return err
			}

			if asJSON {
				item := toItemJSON(out.Item)
				item.Subtasks = itemsJSON(out.Subtasks)
				return writeJSON(cmd.OutOrStdout(), item)
			}
			printItemDetail(cmd.OutOrStdout(), out.Item, out.Subtasks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an item",
		Long: `Delete a task, epic or subtask.

Deleting an epic also deletes its subtasks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			out, err := c.DeleteItemUseCase().Execute(cmd.Context(), usecase.DeleteItemInput{ID: id})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if extra := out.Removed - 1; extra > 0 {
				_, _ = fmt.Fprintf(w, "Deleted %s #%d and %d subtasks\n", kindLabel(out.Kind), id, extra)
			} else {
				_, _ = fmt.Fprintf(w, "Deleted %s #%d\n", kindLabel(out.Kind), id)
			}
			return nil
		},
	}
}

// clearKinds maps clear arguments to item kinds.
var clearKinds = map[string]domain.Kind{
	"tasks":    domain.KindTask,
	"epics":    domain.KindEpic,
	"subtasks": domain.KindSubtask,
}

// newClearCommand creates the clear command.
func newClearCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "clear tasks|epics|subtasks",
		Short:     "Delete every item of one kind",
		Long:      `Delete all tasks, all epics (with their subtasks), or all subtasks.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"tasks", "epics", "subtasks"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := clearKinds[args[0]]

			out, err := c.ClearItemsUseCase().Execute(cmd.Context(), usecase.ClearItemsInput{Kind: kind})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d items\n", out.Removed)
			return nil
		},
	}
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Kind   string
		EpicID int
		JSON   bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		Long: `List items ordered by ID.

Output columns:
  ID, TYPE, STATUS, EPIC, START, END, TITLE

Examples:
  taskboard list
  taskboard list --kind epic
  taskboard list --epic 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := usecase.ListItemsInput{EpicID: opts.EpicID}
			if opts.Kind != "" {
				kind, err := domain.ParseKind(strings.TrimSuffix(opts.Kind, "s"))
				if err != nil {
					return err
				}
				input.Kind = kind
			}

			out, err := c.ListItemsUseCase().Execute(cmd.Context(), input)
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

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "Filter by kind: task, epic, subtask")
	cmd.Flags().IntVar(&opts.EpicID, "epic", 0, "List the subtasks of this epic")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}
