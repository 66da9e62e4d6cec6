package domain

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a task, epic or subtask.
type Status string

const (
	StatusNew        Status = "NEW"         // Created, not started
	StatusInProgress Status = "IN_PROGRESS" // Being worked on
	StatusDone       Status = "DONE"        // Finished
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusDone}
}

// ParseStatus converts user or record input into a Status.
// Matching is case-insensitive and accepts "-" or " " in place of "_".
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	status := Status(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusDone
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}
