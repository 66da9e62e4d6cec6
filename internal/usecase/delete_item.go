package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/tracker"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// DeleteItemInput contains the parameters for deleting an item.
type DeleteItemInput struct {
	ID int // Item ID to delete
}

// DeleteItemOutput contains the result of deleting an item.
type DeleteItemOutput struct {
	Kind    domain.Kind // Kind of the deleted item
	Removed int         // Number of items removed (an epic takes its subtasks with it)
}

// DeleteItem is the use case for deleting a task, epic or subtask.
type DeleteItem struct {
	board  *shared.Board
	logger domain.Logger
}

// NewDeleteItem creates a new DeleteItem use case.
func NewDeleteItem(board *shared.Board, logger domain.Logger) *DeleteItem {
	return &DeleteItem{
		board:  board,
		logger: logger,
	}
}

// Execute deletes the item with the given ID.
func (uc *DeleteItem) Execute(ctx context.Context, in DeleteItemInput) (*DeleteItemOutput, error) {
	out := &DeleteItemOutput{}
	err := uc.board.Update(ctx, func(tr *tracker.Tracker) error {
		kind, ok := tr.KindOf(in.ID)
		if !ok {
			return fmt.Errorf("item #%d: %w", in.ID, domain.ErrNotFound)
		}
		out.Kind = kind
		out.Removed = 1
		if kind == domain.KindEpic {
			out.Removed += len(tr.SubtasksOfEpic(in.ID))
		}
		if err := tr.Delete(in.ID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(in.ID, strings.ToLower(string(out.Kind)), fmt.Sprintf("deleted (%d removed)", out.Removed))
	}

	return out, nil
}
