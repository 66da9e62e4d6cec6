package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/tracker"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// ShowItemInput contains the parameters for showing an item.
type ShowItemInput struct {
	ID int // Item ID to show
}

// ShowItemOutput contains the result of showing an item.
type ShowItemOutput struct {
	Subtasks []domain.Summary // Subtasks in insertion order (epics only)
	Item     domain.Summary   // The item
}

// ShowItem is the use case for displaying an item. Viewing an item
// records it in the history, so the board is saved afterwards.
type ShowItem struct {
	board *shared.Board
}

// NewShowItem creates a new ShowItem use case.
func NewShowItem(board *shared.Board) *ShowItem {
	return &ShowItem{board: board}
}

// Execute looks up the item and records it as viewed.
func (uc *ShowItem) Execute(ctx context.Context, in ShowItemInput) (*ShowItemOutput, error) {
	out := &ShowItemOutput{}
	err := uc.board.Update(ctx, func(tr *tracker.Tracker) error {
		it, err := tr.Get(in.ID)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		out.Item = it.Summary()
		if it.Kind() == domain.KindEpic {
			out.Subtasks = summaries(tr.SubtasksOfEpic(in.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
