package usecase

import (
	"context"
	"time"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/tracker"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// ShowAgendaInput contains the parameters for showing the agenda.
// Fields are ordered to minimize memory padding.
type ShowAgendaInput struct {
	From time.Time // Earliest start time included (zero = unbounded)
	To   time.Time // Start times before this are included (zero = unbounded)
}

// ShowAgendaOutput contains the prioritized items.
type ShowAgendaOutput struct {
	Items []domain.Summary // Scheduled tasks and subtasks ordered by start time
}

// ShowAgenda is the use case for listing scheduled work by start time.
type ShowAgenda struct {
	board *shared.Board
}

// NewShowAgenda creates a new ShowAgenda use case.
func NewShowAgenda(board *shared.Board) *ShowAgenda {
	return &ShowAgenda{board: board}
}

// Execute returns the agenda, optionally narrowed to [From, To).
func (uc *ShowAgenda) Execute(ctx context.Context, in ShowAgendaInput) (*ShowAgendaOutput, error) {
	out := &ShowAgendaOutput{Items: []domain.Summary{}}
	err := uc.board.View(ctx, func(tr *tracker.Tracker) error {
		for _, it := range tr.Prioritized() {
			s := it.Summary()
			if !in.From.IsZero() && s.Start.Before(in.From) {
				continue
			}
			if !in.To.IsZero() && !s.Start.Before(in.To) {
				continue
			}
			out.Items = append(out.Items, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
