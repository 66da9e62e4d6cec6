package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/tracker"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// ClearItemsInput contains the parameters for clearing items.
type ClearItemsInput struct {
	Kind domain.Kind // Which collection to clear
}

// ClearItemsOutput contains the result of clearing items.
type ClearItemsOutput struct {
	Removed int // Number of items removed
}

// ClearItems is the use case for deleting every task, epic or subtask.
// Clearing epics also removes their subtasks; clearing subtasks leaves
// the epics in place with no subtasks.
type ClearItems struct {
	board  *shared.Board
	logger domain.Logger
}

// NewClearItems creates a new ClearItems use case.
func NewClearItems(board *shared.Board, logger domain.Logger) *ClearItems {
	return &ClearItems{
		board:  board,
		logger: logger,
	}
}

// Execute clears the requested collection.
func (uc *ClearItems) Execute(ctx context.Context, in ClearItemsInput) (*ClearItemsOutput, error) {
	out := &ClearItemsOutput{}
	err := uc.board.Update(ctx, func(tr *tracker.Tracker) error {
		switch in.Kind {
		case domain.KindTask:
			out.Removed = len(tr.ListTasks())
			tr.DeleteAllTasks()
		case domain.KindEpic:
			out.Removed = len(tr.ListEpics()) + len(tr.ListSubtasks())
			tr.DeleteAllEpics()
		case domain.KindSubtask:
			out.Removed = len(tr.ListSubtasks())
			tr.DeleteAllSubtasks()
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownKind, in.Kind)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(0, "clear", fmt.Sprintf("cleared %s records: %d removed", in.Kind, out.Removed))
	}

	return out, nil
}
