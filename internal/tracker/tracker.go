// Package tracker implements the in-memory task repository. It owns item
// storage, identity assignment, the booking calendar, the agenda and the
// wiring to the view history.
package tracker

import (
	"fmt"
	"slices"
	"time"

	"github.com/runoshun/taskboard/internal/agenda"
	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/history"
	"github.com/runoshun/taskboard/internal/timeslot"
)

// Options configures a Tracker.
// Fields are ordered to minimize memory padding.
type Options struct {
	HorizonStart time.Time             // First bookable instant
	HorizonEnd   time.Time             // End of the bookable horizon (exclusive)
	History      domain.HistoryManager // View history (nil = bounded default)
}

// Tracker is the task repository. It is not safe for concurrent use;
// callers serialize access to a single instance.
type Tracker struct {
	tasks    map[int]*domain.Task
	epics    map[int]*domain.Epic
	subtasks map[int]*domain.Subtask
	calendar *timeslot.Calendar
	agenda   *agenda.View
	history  domain.HistoryManager
	lastID   int
}

// New creates an empty tracker. A zero horizon defaults to the current
// calendar year.
func New(opts Options) *Tracker {
	start, end := opts.HorizonStart, opts.HorizonEnd
	if start.IsZero() || end.IsZero() {
		start, end = domain.ScheduleConfig{}.Horizon(time.Now())
	}
	hm := opts.History
	if hm == nil {
		hm = history.New(domain.DefaultHistoryLimit)
	}
	return &Tracker{
		tasks:    make(map[int]*domain.Task),
		epics:    make(map[int]*domain.Epic),
		subtasks: make(map[int]*domain.Subtask),
		calendar: timeslot.New(start, end),
		agenda:   agenda.New(),
		history:  hm,
	}
}

// NextID returns the identity the next create will assign.
func (t *Tracker) NextID() int {
	return t.lastID + 1
}

func (t *Tracker) generateID() int {
	t.lastID++
	return t.lastID
}

// === Create ===

// CreateTask stores task under a new identity, which is also written back
// to task.ID. It fails with a *domain.SchedulingConflictError if the
// schedule overlaps a booked interval.
func (t *Tracker) CreateTask(task *domain.Task) error {
	if err := t.checkFree(task.Schedule); err != nil {
		return err
	}
	task.ID = t.generateID()
	stored := task.Clone()
	t.tasks[stored.ID] = stored
	t.reserve(stored.Schedule)
	t.agenda.Upsert(stored)
	return nil
}

// CreateEpic stores epic under a new identity. Epics are never scheduled
// directly; their status starts as NEW.
func (t *Tracker) CreateEpic(epic *domain.Epic) error {
	epic.ID = t.generateID()
	stored := epic.Clone()
	stored.ClearSubtasks()
	stored.Recompute(nil)
	t.epics[stored.ID] = stored
	return nil
}

// CreateSubtask stores sub under a new identity and attaches it to its epic.
func (t *Tracker) CreateSubtask(sub *domain.Subtask) error {
	epic, ok := t.epics[sub.EpicID()]
	if !ok {
		return fmt.Errorf("%w: #%d", domain.ErrEpicNotFound, sub.EpicID())
	}
	if err := t.checkFree(sub.Schedule); err != nil {
		return err
	}
	sub.ID = t.generateID()
	stored := sub.Clone()
	t.subtasks[stored.ID] = stored
	t.reserve(stored.Schedule)
	t.agenda.Upsert(stored)
	epic.AddSubtask(stored.ID)
	t.recompute(epic)
	return nil
}

// === Get ===

// GetTask returns a copy of the task and records it in the history.
func (t *Tracker) GetTask(id int) (*domain.Task, error) {
	task, ok := t.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: #%d", domain.ErrTaskNotFound, id)
	}
	t.history.Add(task)
	return task.Clone(), nil
}

// GetEpic returns a copy of the epic and records it in the history.
func (t *Tracker) GetEpic(id int) (*domain.Epic, error) {
	epic, ok := t.epics[id]
	if !ok {
		return nil, fmt.Errorf("%w: #%d", domain.ErrEpicNotFound, id)
	}
	t.history.Add(epic)
	return epic.Clone(), nil
}

// GetSubtask returns a copy of the subtask and records it in the history.
func (t *Tracker) GetSubtask(id int) (*domain.Subtask, error) {
	sub, ok := t.subtasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: #%d", domain.ErrSubtaskNotFound, id)
	}
	t.history.Add(sub)
	return sub.Clone(), nil
}

// Get looks up an item of any kind and records it in the history.
func (t *Tracker) Get(id int) (domain.Item, error) {
	switch {
	case t.tasks[id] != nil:
		return t.GetTask(id)
	case t.epics[id] != nil:
		return t.GetEpic(id)
	case t.subtasks[id] != nil:
		return t.GetSubtask(id)
	default:
		return nil, fmt.Errorf("item #%d: %w", id, domain.ErrNotFound)
	}
}

// KindOf reports the kind of the item with the given ID without touching
// the history.
func (t *Tracker) KindOf(id int) (domain.Kind, bool) {
	switch {
	case t.tasks[id] != nil:
		return domain.KindTask, true
	case t.epics[id] != nil:
		return domain.KindEpic, true
	case t.subtasks[id] != nil:
		return domain.KindSubtask, true
	default:
		return "", false
	}
}

// Peek returns a copy of the item with the given ID without recording it
// in the history.
func (t *Tracker) Peek(id int) (domain.Item, bool) {
	it := t.lookup(id)
	if it == nil {
		return nil, false
	}
	return cloneItem(it), true
}

// === Update ===

// UpdateTask replaces the stored fields of the task with the same ID.
// The task's own booking is released before the conflict check, so
// re-saving an unchanged schedule succeeds. Unknown IDs are a no-op and
// report false.
func (t *Tracker) UpdateTask(task *domain.Task) (bool, error) {
	stored, ok := t.tasks[task.ID]
	if !ok {
		return false, t.checkFree(task.Schedule)
	}
	if err := t.rebook(stored.Schedule, task.Schedule); err != nil {
		return false, err
	}
	next := task.Clone()
	t.tasks[next.ID] = next
	t.agenda.Upsert(next)
	return true, nil
}

// UpdateSubtask replaces the stored fields of the subtask with the same ID
// and recomputes its epic. Moving a subtask to another epic fails with
// domain.ErrReparent. Unknown IDs are a no-op and report false.
func (t *Tracker) UpdateSubtask(sub *domain.Subtask) (bool, error) {
	stored, ok := t.subtasks[sub.ID]
	if ok && stored.EpicID() != sub.EpicID() {
		return false, fmt.Errorf("%w: subtask #%d belongs to epic #%d", domain.ErrReparent, sub.ID, stored.EpicID())
	}
	if !ok {
		return false, t.checkFree(sub.Schedule)
	}
	if err := t.rebook(stored.Schedule, sub.Schedule); err != nil {
		return false, err
	}
	next := sub.Clone()
	t.subtasks[next.ID] = next
	t.agenda.Upsert(next)
	if epic, ok := t.epics[next.EpicID()]; ok {
		t.recompute(epic)
	}
	return true, nil
}

// UpdateEpic copies title and description onto the stored epic.
// Derived fields are not touched. Unknown IDs are a no-op and report false.
func (t *Tracker) UpdateEpic(epic *domain.Epic) bool {
	stored, ok := t.epics[epic.ID]
	if !ok {
		return false
	}
	stored.Title = epic.Title
	stored.Description = epic.Description
	return true
}

// === Delete ===

// DeleteTask removes a task and releases its booking.
func (t *Tracker) DeleteTask(id int) error {
	task, ok := t.tasks[id]
	if !ok {
		return fmt.Errorf("%w: #%d", domain.ErrTaskNotFound, id)
	}
	t.dropTask(task)
	return nil
}

// DeleteEpic removes an epic together with all of its subtasks.
func (t *Tracker) DeleteEpic(id int) error {
	epic, ok := t.epics[id]
	if !ok {
		return fmt.Errorf("%w: #%d", domain.ErrEpicNotFound, id)
	}
	for _, subID := range epic.SubtaskIDs() {
		if sub, ok := t.subtasks[subID]; ok {
			t.dropSubtask(sub)
		}
	}
	t.history.Remove(id)
	delete(t.epics, id)
	return nil
}

// DeleteSubtask removes a subtask, detaches it from its epic and
// recomputes the epic.
func (t *Tracker) DeleteSubtask(id int) error {
	sub, ok := t.subtasks[id]
	if !ok {
		return fmt.Errorf("%w: #%d", domain.ErrSubtaskNotFound, id)
	}
	t.dropSubtask(sub)
	if epic, ok := t.epics[sub.EpicID()]; ok {
		epic.RemoveSubtask(id)
		t.recompute(epic)
	}
	return nil
}

// Delete removes an item of any kind.
func (t *Tracker) Delete(id int) error {
	kind, ok := t.KindOf(id)
	if !ok {
		return fmt.Errorf("item #%d: %w", id, domain.ErrNotFound)
	}
	switch kind {
	case domain.KindEpic:
		return t.DeleteEpic(id)
	case domain.KindSubtask:
		return t.DeleteSubtask(id)
	default:
		return t.DeleteTask(id)
	}
}

// DeleteAllTasks removes every standalone task.
func (t *Tracker) DeleteAllTasks() {
	for _, task := range t.tasks {
		t.dropTask(task)
	}
}

// DeleteAllEpics removes every epic and, with them, every subtask.
func (t *Tracker) DeleteAllEpics() {
	for _, sub := range t.subtasks {
		t.dropSubtask(sub)
	}
	for id := range t.epics {
		t.history.Remove(id)
		delete(t.epics, id)
	}
}

// DeleteAllSubtasks removes every subtask and resets every epic to NEW
// with no time window.
func (t *Tracker) DeleteAllSubtasks() {
	for _, sub := range t.subtasks {
		t.dropSubtask(sub)
	}
	for _, epic := range t.epics {
		epic.ClearSubtasks()
		t.recompute(epic)
	}
}

// === Queries ===

// SubtasksOfEpic returns copies of the epic's subtasks in insertion order.
// An unknown epic yields an empty slice.
func (t *Tracker) SubtasksOfEpic(id int) []*domain.Subtask {
	epic, ok := t.epics[id]
	if !ok {
		return []*domain.Subtask{}
	}
	children := t.children(epic)
	out := make([]*domain.Subtask, 0, len(children))
	for _, c := range children {
		out = append(out, c.Clone())
	}
	return out
}

// ListTasks returns copies of all tasks ordered by ID.
func (t *Tracker) ListTasks() []*domain.Task {
	return sortedClones(t.tasks, (*domain.Task).Clone)
}

// ListEpics returns copies of all epics ordered by ID.
func (t *Tracker) ListEpics() []*domain.Epic {
	return sortedClones(t.epics, (*domain.Epic).Clone)
}

// ListSubtasks returns copies of all subtasks ordered by ID.
func (t *Tracker) ListSubtasks() []*domain.Subtask {
	return sortedClones(t.subtasks, (*domain.Subtask).Clone)
}

// Prioritized returns scheduled tasks and subtasks ordered by start time.
func (t *Tracker) Prioritized() []domain.Item {
	items := t.agenda.List()
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		out = append(out, cloneItem(it))
	}
	return out
}

// History returns the current state of the viewed items, oldest first.
func (t *Tracker) History() []domain.Item {
	viewed := t.history.History()
	out := make([]domain.Item, 0, len(viewed))
	for _, v := range viewed {
		if it := t.lookup(v.ItemID()); it != nil {
			out = append(out, cloneItem(it))
		}
	}
	return out
}

// === Internals ===

func (t *Tracker) lookup(id int) domain.Item {
	if task, ok := t.tasks[id]; ok {
		return task
	}
	if epic, ok := t.epics[id]; ok {
		return epic
	}
	if sub, ok := t.subtasks[id]; ok {
		return sub
	}
	return nil
}

func (t *Tracker) children(epic *domain.Epic) []*domain.Subtask {
	ids := epic.SubtaskIDs()
	out := make([]*domain.Subtask, 0, len(ids))
	for _, id := range ids {
		if sub, ok := t.subtasks[id]; ok {
			out = append(out, sub)
		}
	}
	return out
}

func (t *Tracker) recompute(epic *domain.Epic) {
	epic.Recompute(t.children(epic))
}

func (t *Tracker) dropTask(task *domain.Task) {
	t.history.Remove(task.ID)
	t.agenda.Remove(task.ID)
	t.release(task.Schedule)
	delete(t.tasks, task.ID)
}

// dropSubtask removes the subtask from storage without touching its epic.
func (t *Tracker) dropSubtask(sub *domain.Subtask) {
	t.history.Remove(sub.ID)
	t.agenda.Remove(sub.ID)
	t.release(sub.Schedule)
	delete(t.subtasks, sub.ID)
}

func (t *Tracker) checkFree(s *domain.Schedule) error {
	start, end := s.Interval()
	if t.calendar.IsBooked(start, end) {
		return &domain.SchedulingConflictError{Start: start, End: end}
	}
	return nil
}

// checkOverlap is the restore-time variant of checkFree: only slots inside
// the current horizon are compared, so stored schedules from an earlier year
// load without a booking.
func (t *Tracker) checkOverlap(s *domain.Schedule) error {
	start, end := s.Interval()
	if t.calendar.Overlaps(start, end) {
		return &domain.SchedulingConflictError{Start: start, End: end}
	}
	return nil
}

func (t *Tracker) reserve(s *domain.Schedule) {
	t.calendar.Book(s.Interval())
}

func (t *Tracker) release(s *domain.Schedule) {
	t.calendar.Free(s.Interval())
}

// rebook swaps the booking prev for next, restoring prev on conflict.
func (t *Tracker) rebook(prev, next *domain.Schedule) error {
	t.release(prev)
	if err := t.checkFree(next); err != nil {
		t.reserve(prev)
		return err
	}
	t.reserve(next)
	return nil
}

func cloneItem(it domain.Item) domain.Item {
	switch v := it.(type) {
	case *domain.Task:
		return v.Clone()
	case *domain.Epic:
		return v.Clone()
	case *domain.Subtask:
		return v.Clone()
	default:
		return it
	}
}

func sortedClones[T any](m map[int]*T, clone func(*T) *T) []*T {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(m[id]))
	}
	return out
}
