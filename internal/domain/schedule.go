package domain

import (
	"fmt"
	"time"
)

// Schedule is a booked interval on the calendar.
// A nil *Schedule means the item has neither a start time nor a duration.
type Schedule struct {
	Start    time.Time     `json:"start" yaml:"start"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewSchedule returns a schedule starting at start and lasting d.
// A zero start is rejected; unscheduled items carry a nil *Schedule.
func NewSchedule(start time.Time, d time.Duration) (*Schedule, error) {
	if start.IsZero() {
		return nil, ErrZeroStart
	}
	if d < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeDuration, d)
	}
	return &Schedule{Start: start, Duration: d}, nil
}

// End returns Start + Duration.
func (s *Schedule) End() time.Time {
	return s.Start.Add(s.Duration)
}

// Interval returns the half-open interval [start, end).
// Both values are zero if s is nil.
func (s *Schedule) Interval() (start, end time.Time) {
	if s == nil {
		return time.Time{}, time.Time{}
	}
	return s.Start, s.End()
}

// Clone returns a copy of s (nil-safe).
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Equal reports whether both schedules describe the same interval (nil-safe).
func (s *Schedule) Equal(o *Schedule) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	return s.Start.Equal(o.Start) && s.Duration == o.Duration
}

// String formats the schedule as "2006-01-02 15:04 (30m0s)".
func (s *Schedule) String() string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", s.Start.Format(TimeLayout), s.Duration)
}

// TimeLayout is the layout used for start times in the CLI and record files.
const TimeLayout = "2006-01-02 15:04"
