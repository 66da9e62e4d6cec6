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

// EditItemInput contains the parameters for editing a task, epic or subtask.
// All fields except ID are optional. Only non-nil fields will be updated.
// Setting only one of Start or Duration keeps the other from the current schedule.
// Fields are ordered to minimize memory padding.
type EditItemInput struct {
	Title       *string        // New title (nil = no change)
	Description *string        // New description (nil = no change)
	Status      *domain.Status // New status (tasks and subtasks only)
	Start       *time.Time     // New start time (tasks and subtasks only)
	Duration    *time.Duration // New duration (tasks and subtasks only)
	ID          int            // Item ID to edit (required)
	Unschedule  bool           // Clear start time and duration
}

func (in EditItemInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil &&
		in.Start == nil && in.Duration == nil && !in.Unschedule
}

func (in EditItemInput) touchesDerived() bool {
	return in.Status != nil || in.Start != nil || in.Duration != nil || in.Unschedule
}

// EditItemOutput contains the result of editing an item.
type EditItemOutput struct {
	Item domain.Summary // The item after the edit
	Epic domain.Summary // The owning epic after recompute (subtasks only)
}

// EditItem is the use case for editing an existing item.
type EditItem struct {
	board  *shared.Board
	logger domain.Logger
}

// NewEditItem creates a new EditItem use case.
func NewEditItem(board *shared.Board, logger domain.Logger) *EditItem {
	return &EditItem{
		board:  board,
		logger: logger,
	}
}

// Execute edits an item with the given input.
func (uc *EditItem) Execute(ctx context.Context, in EditItemInput) (*EditItemOutput, error) {
	if in.empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}
	if in.Unschedule && (in.Start != nil || in.Duration != nil) {
		return nil, domain.ErrUnscheduleConflict
	}
	if in.Status != nil && !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *in.Status)
	}

	out := &EditItemOutput{}
	err := uc.board.Update(ctx, func(tr *tracker.Tracker) error {
		it, ok := tr.Peek(in.ID)
		if !ok {
			return fmt.Errorf("item #%d: %w", in.ID, domain.ErrNotFound)
		}

		switch v := it.(type) {
		case *domain.Epic:
			if in.touchesDerived() {
				return domain.ErrEpicDerived
			}
			applyText(&v.Title, &v.Description, in)
			tr.UpdateEpic(v)
		case *domain.Task:
			if err := applyTaskFields(v, in); err != nil {
				return err
			}
			if _, err := tr.UpdateTask(v); err != nil {
				return fmt.Errorf("update task: %w", err)
			}
		case *domain.Subtask:
			if err := applyTaskFields(&v.Task, in); err != nil {
				return err
			}
			if _, err := tr.UpdateSubtask(v); err != nil {
				return fmt.Errorf("update subtask: %w", err)
			}
			if epic, ok := tr.Peek(v.EpicID()); ok {
				out.Epic = epic.Summary()
			}
		}

		updated, _ := tr.Peek(in.ID)
		out.Item = updated.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(in.ID, strings.ToLower(string(out.Item.Kind)), fmt.Sprintf("edited: %q [%s]", out.Item.Title, out.Item.Status))
	}

	return out, nil
}

func applyText(title, description *string, in EditItemInput) {
	if in.Title != nil {
		*title = *in.Title
	}
	if in.Description != nil {
		*description = *in.Description
	}
}

func applyTaskFields(t *domain.Task, in EditItemInput) error {
	applyText(&t.Title, &t.Description, in)
	if in.Status != nil {
		t.Status = *in.Status
	}
	switch {
	case in.Unschedule:
		t.ClearSchedule()
	case in.Start != nil || in.Duration != nil:
		sched, err := mergeSchedule(t.Schedule, in.Start, in.Duration)
		if err != nil {
			return err
		}
		t.Schedule = sched
	}
	return nil
}
