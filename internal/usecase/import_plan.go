package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/tracker"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// ImportPlanInput contains the parameters for importing a plan file.
type ImportPlanInput struct {
	Content []byte // YAML plan content
	DryRun  bool   // If true, validate against the board without saving
}

// ImportPlanOutput contains the result of importing a plan.
type ImportPlanOutput struct {
	Items []domain.Summary // Created items in creation order (epics after their subtasks are recomputed)
}

// ImportPlan is the use case for creating many items from a YAML plan.
// The import is all-or-nothing: any failure leaves the board unchanged.
type ImportPlan struct {
	board  *shared.Board
	logger domain.Logger
}

// NewImportPlan creates a new ImportPlan use case.
func NewImportPlan(board *shared.Board, logger domain.Logger) *ImportPlan {
	return &ImportPlan{
		board:  board,
		logger: logger,
	}
}

// Execute parses the plan and creates its tasks, then its epics with their subtasks.
func (uc *ImportPlan) Execute(ctx context.Context, in ImportPlanInput) (*ImportPlanOutput, error) {
	plan, err := domain.ParsePlan(in.Content)
	if err != nil {
		return nil, err
	}

	out := &ImportPlanOutput{Items: make([]domain.Summary, 0, plan.Size())}
	apply := func(tr *tracker.Tracker) error {
		var ids []int
		for i, p := range plan.Tasks {
			task := domain.NewTask(p.Title, p.Description)
			task.Status = p.Status
			task.Schedule = p.Schedule
			if err := tr.CreateTask(task); err != nil {
				return fmt.Errorf("task %d: create task: %w", i+1, err)
			}
			ids = append(ids, task.ID)
		}
		for i, p := range plan.Epics {
			epic := domain.NewEpic(p.Title, p.Description)
			if err := tr.CreateEpic(epic); err != nil {
				return fmt.Errorf("epic %d: create epic: %w", i+1, err)
			}
			ids = append(ids, epic.ID)
			for j, ps := range p.Subtasks {
				sub := domain.NewSubtask(ps.Title, ps.Description, epic.ID)
				sub.Status = ps.Status
				sub.Schedule = ps.Schedule
				if err := tr.CreateSubtask(sub); err != nil {
					return fmt.Errorf("epic %d subtask %d: create subtask: %w", i+1, j+1, err)
				}
				ids = append(ids, sub.ID)
			}
		}
		for _, id := range ids {
			if it, ok := tr.Peek(id); ok {
				out.Items = append(out.Items, it.Summary())
			}
		}
		return nil
	}

	if in.DryRun {
		err = uc.board.View(ctx, apply)
	} else {
		err = uc.board.Update(ctx, apply)
	}
	if err != nil {
		return nil, err
	}

	if uc.logger != nil && !in.DryRun {
		uc.logger.Info(0, "import", fmt.Sprintf("imported %d items", len(out.Items)))
	}

	return out, nil
}
