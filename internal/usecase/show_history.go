package usecase

import (
	"context"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/tracker"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// ShowHistoryInput contains the parameters for showing the history.
type ShowHistoryInput struct{}

// ShowHistoryOutput contains the viewed items.
type ShowHistoryOutput struct {
	Items []domain.Summary // Current state of viewed items, oldest first
}

// ShowHistory is the use case for listing recently viewed items.
type ShowHistory struct {
	board *shared.Board
}

// NewShowHistory creates a new ShowHistory use case.
func NewShowHistory(board *shared.Board) *ShowHistory {
	return &ShowHistory{board: board}
}

// Execute returns the history without modifying it.
func (uc *ShowHistory) Execute(ctx context.Context, _ ShowHistoryInput) (*ShowHistoryOutput, error) {
	out := &ShowHistoryOutput{}
	err := uc.board.View(ctx, func(tr *tracker.Tracker) error {
		out.Items = summaries(tr.History())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
