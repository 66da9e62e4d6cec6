package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is the root of every lookup failure.
var ErrNotFound = errors.New("not found")

// Domain errors.
var (
	ErrTaskNotFound       = fmt.Errorf("task %w", ErrNotFound)
	ErrEpicNotFound       = fmt.Errorf("epic %w", ErrNotFound)
	ErrSubtaskNotFound    = fmt.Errorf("subtask %w", ErrNotFound)
	ErrSchedulingConflict = errors.New("time interval is already booked")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrUnknownKind        = errors.New("unknown item type")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNegativeDuration   = errors.New("duration cannot be negative")
	ErrZeroStart          = errors.New("start time must be set")
	ErrReparent           = errors.New("subtask cannot be moved to another epic")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrNotInitialized     = errors.New("taskboard not initialized (run 'taskboard init' first)")
	ErrAlreadyInitialized = errors.New("taskboard already initialized")
	ErrConfigExists       = errors.New("config file already exists")
	ErrIncompleteSchedule = errors.New("start time and duration must be set together")
	ErrEpicDerived        = errors.New("epic status and schedule are derived from its subtasks")
	ErrEmptyFile          = errors.New("file is empty")
	ErrNoItemsInFile      = errors.New("no tasks or epics found in file")
	ErrUnscheduleConflict = errors.New("cannot unschedule and set a start time or duration at once")
)

// SchedulingConflictError reports a rejected interval.
type SchedulingConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *SchedulingConflictError) Error() string {
	return fmt.Sprintf("%s: %s - %s", ErrSchedulingConflict,
		e.Start.Format(TimeLayout), e.End.Format(TimeLayout))
}

// Is makes errors.Is(err, ErrSchedulingConflict) match.
func (e *SchedulingConflictError) Is(target error) bool {
	return target == ErrSchedulingConflict
}

// MalformedRecordError reports a record that could not be decoded.
// Fields are ordered to minimize memory padding.
type MalformedRecordError struct {
	Err   error  // Underlying cause
	Field string // Column or field name (empty if the whole record is bad)
	Value string // Offending raw value
	Line  int    // 1-based line number (0 if not line oriented)
}

func (e *MalformedRecordError) Error() string {
	msg := ErrMalformedRecord.Error()
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": %s=%q", e.Field, e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedRecord) match.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
