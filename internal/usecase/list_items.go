package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/tracker"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// ListItemsInput contains the parameters for listing items.
type ListItemsInput struct {
	Kind   domain.Kind // Filter by kind (empty = all kinds)
	EpicID int         // List the subtasks of this epic instead (0 = not set)
}

// ListItemsOutput contains the result of listing items.
type ListItemsOutput struct {
	Items []domain.Summary // Items ordered by ID, or by insertion for an epic's subtasks
}

// ListItems is the use case for listing items.
type ListItems struct {
	board *shared.Board
}

// NewListItems creates a new ListItems use case.
func NewListItems(board *shared.Board) *ListItems {
	return &ListItems{board: board}
}

// Execute returns the matching items. Listing does not touch the history.
func (uc *ListItems) Execute(ctx context.Context, in ListItemsInput) (*ListItemsOutput, error) {
	out := &ListItemsOutput{}
	err := uc.board.View(ctx, func(tr *tracker.Tracker) error {
		if in.EpicID != 0 {
			if kind, ok := tr.KindOf(in.EpicID); !ok || kind != domain.KindEpic {
				return fmt.Errorf("%w: #%d", domain.ErrEpicNotFound, in.EpicID)
			}
			out.Items = summaries(tr.SubtasksOfEpic(in.EpicID))
			return nil
		}

		switch in.Kind {
		case domain.KindTask:
			out.Items = summaries(tr.ListTasks())
		case domain.KindEpic:
			out.Items = summaries(tr.ListEpics())
		case domain.KindSubtask:
			out.Items = summaries(tr.ListSubtasks())
		case "":
			out.Items = append(summaries(tr.ListTasks()), summaries(tr.ListEpics())...)
			out.Items = append(out.Items, summaries(tr.ListSubtasks())...)
			slices.SortFunc(out.Items, func(a, b domain.Summary) int { return cmp.Compare(a.ID, b.ID) })
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownKind, in.Kind)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
