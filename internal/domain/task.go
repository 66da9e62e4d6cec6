// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind tags the three item variants.
type Kind string

const (
	KindTask    Kind = "TASK"
	KindEpic    Kind = "EPIC"
	KindSubtask Kind = "SUBTASK"
)

// ParseKind converts user or record input into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case KindTask, KindEpic, KindSubtask:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Item is implemented by *Task, *Epic and *Subtask only.
type Item interface {
	Kind() Kind
	ItemID() int
	Summary() Summary
	sealed()
}

// Summary is a flat, read-only view of an item used for listings and history.
// Fields are ordered to minimize memory padding.
type Summary struct {
	Start       time.Time     // Start time (zero unless Scheduled)
	End         time.Time     // End time (zero unless Scheduled)
	Title       string        // Title
	Description string        // Description
	Kind        Kind          // Variant tag
	Status      Status        // Current (or derived) status
	Duration    time.Duration // Duration (zero unless Scheduled)
	ID          int           // Item ID
	EpicID      int           // Owning epic (subtasks only, 0 otherwise)
	Scheduled   bool          // Whether Start/End/Duration are defined
}

// SameItem reports whether a and b have the same identity.
// IDs are unique across all kinds, so the kind is not compared.
func SameItem(a, b Item) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ItemID() == b.ItemID()
}

// Task is a standalone unit of work.
// Fields are ordered to minimize memory padding.
type Task struct {
	Schedule    *Schedule // Booked interval (nil = unscheduled)
	Title       string    // Title
	Description string    // Description
	Status      Status    // Current status
	ID          int       // Assigned by the tracker on create (0 = unassigned)
}

// NewTask creates an unsaved task with status NEW.
func NewTask(title, description string) *Task {
	return &Task{
		Title:       title,
		Description: description,
		Status:      StatusNew,
	}
}

// RestoreTask rebuilds a stored task with a known ID and status.
func RestoreTask(id int, title, description string, status Status) *Task {
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      status,
	}
}

// Kind returns KindTask.
func (t *Task) Kind() Kind { return KindTask }

// ItemID returns the task ID.
func (t *Task) ItemID() int { return t.ID }

func (t *Task) sealed() {}

// Summary returns a flat view of the task.
func (t *Task) Summary() Summary {
	s := Summary{
		ID:          t.ID,
		Kind:        KindTask,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
	}
	if t.Schedule != nil {
		s.Scheduled = true
		s.Start = t.Schedule.Start
		s.End = t.Schedule.End()
		s.Duration = t.Schedule.Duration
	}
	return s
}

// SetSchedule books the task for d starting at start.
func (t *Task) SetSchedule(start time.Time, d time.Duration) error {
	s, err := NewSchedule(start, d)
	if err != nil {
		return err
	}
	t.Schedule = s
	return nil
}

// ClearSchedule removes both start time and duration.
func (t *Task) ClearSchedule() {
	t.Schedule = nil
}

// StartTime returns the start time if scheduled.
func (t *Task) StartTime() (time.Time, bool) {
	if t.Schedule == nil {
		return time.Time{}, false
	}
	return t.Schedule.Start, true
}

// EndTime returns Start + Duration if scheduled.
func (t *Task) EndTime() (time.Time, bool) {
	if t.Schedule == nil {
		return time.Time{}, false
	}
	return t.Schedule.End(), true
}

// Equal reports identity equality.
func (t *Task) Equal(o *Task) bool {
	return o != nil && t.ID == o.ID
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Schedule = t.Schedule.Clone()
	return &c
}

// Subtask is a task owned by exactly one epic.
// The owning epic is fixed at construction.
type Subtask struct {
	Task
	epicID int
}

// NewSubtask creates an unsaved subtask of the given epic.
func NewSubtask(title, description string, epicID int) *Subtask {
	return &Subtask{
		Task:   *NewTask(title, description),
		epicID: epicID,
	}
}

// RestoreSubtask rebuilds a stored subtask.
func RestoreSubtask(id int, title, description string, status Status, epicID int) *Subtask {
	return &Subtask{
		Task:   *RestoreTask(id, title, description, status),
		epicID: epicID,
	}
}

// Kind returns KindSubtask.
func (s *Subtask) Kind() Kind { return KindSubtask }

// EpicID returns the owning epic ID.
func (s *Subtask) EpicID() int { return s.epicID }

// Summary returns a flat view of the subtask.
func (s *Subtask) Summary() Summary {
	sum := s.Task.Summary()
	sum.Kind = KindSubtask
	sum.EpicID = s.epicID
	return sum
}

// Clone returns a deep copy of the subtask.
func (s *Subtask) Clone() *Subtask {
	return &Subtask{
		Task:   *s.Task.Clone(),
		epicID: s.epicID,
	}
}

// Epic groups subtasks. Status and time window are derived from the
// subtasks by Recompute and cannot be set directly.
// Fields are ordered to minimize memory padding.
type Epic struct {
	start       time.Time
	end         time.Time
	Title       string
	Description string
	status      Status
	subtaskIDs  []int
	duration    time.Duration
	ID          int
	scheduled   bool
}

// NewEpic creates an unsaved epic with status NEW.
func NewEpic(title, description string) *Epic {
	return &Epic{
		Title:       title,
		Description: description,
		status:      StatusNew,
	}
}

// RestoreEpic rebuilds a stored epic. The status is provisional until the
// subtasks are attached and Recompute runs.
func RestoreEpic(id int, title, description string, status Status) *Epic {
	return &Epic{
		ID:          id,
		Title:       title,
		Description: description,
		status:      status,
	}
}

// Kind returns KindEpic.
func (e *Epic) Kind() Kind { return KindEpic }

// ItemID returns the epic ID.
func (e *Epic) ItemID() int { return e.ID }

func (e *Epic) sealed() {}

// Status returns the last computed status.
func (e *Epic) Status() Status { return e.status }

// Duration returns the sum of subtask durations, if any subtask is scheduled.
func (e *Epic) Duration() (time.Duration, bool) { return e.duration, e.scheduled }

// StartTime returns the earliest subtask start time, if any.
func (e *Epic) StartTime() (time.Time, bool) { return e.start, e.scheduled }

// EndTime returns the latest subtask end time, if any.
func (e *Epic) EndTime() (time.Time, bool) { return e.end, e.scheduled }

// SubtaskIDs returns the subtask IDs in insertion order.
func (e *Epic) SubtaskIDs() []int {
	return slices.Clone(e.subtaskIDs)
}

// HasSubtask reports whether id is attached to the epic.
func (e *Epic) HasSubtask(id int) bool {
	return slices.Contains(e.subtaskIDs, id)
}

// AddSubtask appends id unless already attached.
func (e *Epic) AddSubtask(id int) {
	if e.HasSubtask(id) {
		return
	}
	e.subtaskIDs = append(e.subtaskIDs, id)
}

// RemoveSubtask detaches id. Absent IDs are ignored.
func (e *Epic) RemoveSubtask(id int) {
	e.subtaskIDs = slices.DeleteFunc(e.subtaskIDs, func(v int) bool { return v == id })
}

// ClearSubtasks detaches all subtasks.
func (e *Epic) ClearSubtasks() {
	e.subtaskIDs = nil
}

// Summary returns a flat view of the epic.
func (e *Epic) Summary() Summary {
	return Summary{
		ID:          e.ID,
		Kind:        KindEpic,
		Title:       e.Title,
		Description: e.Description,
		Status:      e.status,
		Scheduled:   e.scheduled,
		Start:       e.start,
		End:         e.end,
		Duration:    e.duration,
	}
}

// Equal reports identity equality.
func (e *Epic) Equal(o *Epic) bool {
	return o != nil && e.ID == o.ID
}

// Clone returns a deep copy of the epic.
func (e *Epic) Clone() *Epic {
	c := *e
	c.subtaskIDs = slices.Clone(e.subtaskIDs)
	return &c
}

var (
	_ Item = (*Task)(nil)
	_ Item = (*Subtask)(nil)
	_ Item = (*Epic)(nil)
)
