package usecase

import (
	"time"

	"github.com/runoshun/taskboard/internal/domain"
)

// newSchedule builds a schedule from optional inputs.
// Both nil means unscheduled; exactly one nil is an error.
func newSchedule(start *time.Time, d *time.Duration) (*domain.Schedule, error) {
	if start == nil && d == nil {
		return nil, nil
	}
	if start == nil || d == nil {
		return nil, domain.ErrIncompleteSchedule
	}
	return domain.NewSchedule(*start, *d)
}

// mergeSchedule fills the missing half of a partial edit from the current schedule.
func mergeSchedule(cur *domain.Schedule, start *time.Time, d *time.Duration) (*domain.Schedule, error) {
	if cur != nil {
		if start == nil {
			s := cur.Start
			start = &s
		}
		if d == nil {
			v := cur.Duration
			d = &v
		}
	}
	return newSchedule(start, d)
}

// describeSchedule formats a schedule for log messages.
func describeSchedule(s *domain.Schedule) string {
	if s == nil {
		return "unscheduled"
	}
	return s.String()
}

// summaries flattens items into summaries, preserving order.
func summaries[T domain.Item](items []T) []domain.Summary {
	out := make([]domain.Summary, 0, len(items))
	for _, it := range items {
		out = append(out, it.Summary())
	}
	return out
}
