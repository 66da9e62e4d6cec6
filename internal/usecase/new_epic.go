package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/tracker"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// NewEpicInput contains the parameters for creating a new epic.
type NewEpicInput struct {
	Title       string // Epic title (required)
	Description string // Epic description (optional)
}

// NewEpicOutput contains the result of creating a new epic.
type NewEpicOutput struct {
	Epic domain.Summary // The created epic
}

// NewEpic is the use case for creating an epic.
type NewEpic struct {
	board  *shared.Board
	logger domain.Logger
}

// NewNewEpic creates a new NewEpic use case.
func NewNewEpic(board *shared.Board, logger domain.Logger) *NewEpic {
	return &NewEpic{
		board:  board,
		logger: logger,
	}
}

// Execute creates a new epic. Its status and schedule follow its subtasks.
func (uc *NewEpic) Execute(ctx context.Context, in NewEpicInput) (*NewEpicOutput, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}

	epic := domain.NewEpic(in.Title, in.Description)
	err := uc.board.Update(ctx, func(tr *tracker.Tracker) error {
		if err := tr.CreateEpic(epic); err != nil {
			return fmt.Errorf("create epic: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(epic.ID, "epic", fmt.Sprintf("created: %q", epic.Title))
	}

	return &NewEpicOutput{Epic: epic.Summary()}, nil
}
