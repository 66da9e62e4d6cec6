// Package usecase contains application use cases.
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

// NewTaskInput contains the parameters for creating a new task.
// Start and Duration must be set together or not at all.
// Fields are ordered to minimize memory padding.
type NewTaskInput struct {
	Start       *time.Time     // Start time (optional)
	Duration    *time.Duration // Duration (optional)
	Title       string         // Task title (required)
	Description string         // Task description (optional)
	Status      domain.Status  // Initial status (empty = NEW)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task domain.Summary // The created task
}

// NewTask is the use case for creating a standalone task.
type NewTask struct {
	board  *shared.Board
	logger domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(board *shared.Board, logger domain.Logger) *NewTask {
	return &NewTask{
		board:  board,
		logger: logger,
	}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
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

	task := domain.NewTask(in.Title, in.Description)
	if in.Status != "" {
		task.Status = in.Status
	}
	task.Schedule = sched

	err = uc.board.Update(ctx, func(tr *tracker.Tracker) error {
		if err := tr.CreateTask(task); err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("created: %q (%s)", task.Title, describeSchedule(sched)))
	}

	return &NewTaskOutput{Task: task.Summary()}, nil
}
