package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/tracker"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// NewSubtaskInput contains the parameters for creating a subtask.
// Fields are ordered to minimize memory padding.
type NewSubtaskInput struct {
	Start       *time.Time     // Start time (optional)
	Duration    *time.Duration // Duration (optional)
	Title       string         // Subtask title (required)
	Description string         // Subtask description (optional)
	Status      domain.Status  // Initial status (empty = NEW)
	EpicID      int            // Owning epic (required)
}

// NewSubtaskOutput contains the result of creating a subtask.
type NewSubtaskOutput struct {
	Subtask domain.Summary // The created subtask
	Epic    domain.Summary // The owning epic after recompute
}

// NewSubtask is the use case for adding a subtask to an epic.
type NewSubtask struct {
	board  *shared.Board
	logger domain.Logger
}

// NewNewSubtask creates a new NewSubtask use case.
func NewNewSubtask(board *shared.Board, logger domain.Logger) *NewSubtask {
	return &NewSubtask{
		board:  board,
		logger: logger,
	}
}

// Execute creates a subtask and attaches it to its epic.
func (uc *NewSubtask) Execute(ctx context.Context, in NewSubtaskInput) (*NewSubtaskOutput, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}
	if in.Status != "" && !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}
	sched, err := newSchedule(in.Start, in.Duration)
	if err != nil {
		return nil, err
	}

	sub := domain.NewSubtask(in.Title, in.Description, in.EpicID)
	if in.Status != "" {
		sub.Status = in.Status
	}
	sub.Schedule = sched

	var epic domain.Summary
	err = uc.board.Update(ctx, func(tr *tracker.Tracker) error {
		if err := tr.CreateSubtask(sub); err != nil {
			return fmt.Errorf("create subtask: %w", err)
		}
		if it, ok := tr.Peek(in.EpicID); ok {
			epic = it.Summary()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(sub.ID, "subtask", fmt.Sprintf("created: %q in epic #%d (%s)", sub.Title, in.EpicID, describeSchedule(sched)))
	}

	return &NewSubtaskOutput{Subtask: sub.Summary(), Epic: epic}, nil
}
