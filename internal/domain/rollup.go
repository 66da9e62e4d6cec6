package domain

import "time"

// Recompute derives the epic's status, duration and time window from its
// subtasks. children must be the epic's subtasks (nil entries are skipped).
func (e *Epic) Recompute(children []*Subtask) {
	e.status = RollupStatus(children)

	var (
		total     time.Duration
		start     time.Time
		end       time.Time
		scheduled bool
	)
	for _, c := range children {
		if c == nil || c.Schedule == nil {
			continue
		}
		s, en := c.Schedule.Interval()
		if !scheduled {
			start, end, total = s, en, c.Schedule.Duration
			scheduled = true
			continue
		}
		total += c.Schedule.Duration
		if s.Before(start) {
			start = s
		}
		if en.After(end) {
			end = en
		}
	}

	e.scheduled = scheduled
	e.duration = total
	e.start = start
	e.end = end
}

// RollupStatus returns NEW when there are no subtasks or all are NEW,
// DONE when all are DONE, and IN_PROGRESS otherwise.
func RollupStatus(children []*Subtask) Status {
	var total, fresh, done int
	for _, c := range children {
		if c == nil {
			continue
		}
		total++
		switch c.Status {
		case StatusNew:
			fresh++
		case StatusDone:
			done++
		}
	}
	switch {
	case total == 0, fresh == total:
		return StatusNew
	case done == total:
		return StatusDone
	default:
		return StatusInProgress
	}
}
