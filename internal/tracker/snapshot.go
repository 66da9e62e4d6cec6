package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/runoshun/taskboard/internal/domain"
)

// historyIDs is implemented by history managers that can report IDs directly.
type historyIDs interface {
	IDs() []int
}

// Snapshot returns a detached copy of the tracker's full state.
func (t *Tracker) Snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		Tasks:    t.ListTasks(),
		Epics:    t.ListEpics(),
		Subtasks: t.ListSubtasks(),
		NextID:   t.NextID(),
	}
	if h, ok := t.history.(historyIDs); ok {
		snap.History = h.IDs()
	} else {
		for _, it := range t.history.History() {
			snap.History = append(snap.History, it.ItemID())
		}
	}
	return snap
}

// Restore builds a tracker from a snapshot. Subtasks are attached to their
// epics in ID order, schedules are re-booked, epics are recomputed and the
// history is replayed. Schedules outside the horizon stay on the agenda but
// hold no booking. Any inconsistency fails the whole restore.
func Restore(snap *domain.Snapshot, opts Options) (*Tracker, error) {
	t := New(opts)
	if snap == nil {
		return t, nil
	}

	maxID := 0
	claim := func(id int) error {
		if id <= 0 {
			return &domain.MalformedRecordError{Field: "ID", Value: strconv.Itoa(id), Err: errors.New("id must be positive")}
		}
		if t.lookup(id) != nil {
			return &domain.MalformedRecordError{Field: "ID", Value: strconv.Itoa(id), Err: errors.New("duplicate id")}
		}
		maxID = max(maxID, id)
		return nil
	}

	for _, task := range snap.Tasks {
		if err := claim(task.ID); err != nil {
			return nil, err
		}
		if err := t.checkOverlap(task.Schedule); err != nil {
			return nil, fmt.Errorf("restore task #%d: %w", task.ID, err)
		}
		stored := task.Clone()
		t.tasks[stored.ID] = stored
		t.reserve(stored.Schedule)
		t.agenda.Upsert(stored)
	}

	for _, epic := range snap.Epics {
		if err := claim(epic.ID); err != nil {
			return nil, err
		}
		stored := epic.Clone()
		stored.ClearSubtasks()
		t.epics[stored.ID] = stored
	}

	subs := slices.Clone(snap.Subtasks)
	slices.SortFunc(subs, func(a, b *domain.Subtask) int { return a.ID - b.ID })
	for _, sub := range subs {
		if err := claim(sub.ID); err != nil {
			return nil, err
		}
		epic, ok := t.epics[sub.EpicID()]
		if !ok {
			return nil, &domain.MalformedRecordError{
				Field: "EPIC_ID",
				Value: strconv.Itoa(sub.EpicID()),
				Err:   domain.ErrEpicNotFound,
			}
		}
		if err := t.checkOverlap(sub.Schedule); err != nil {
			return nil, fmt.Errorf("restore subtask #%d: %w", sub.ID, err)
		}
		stored := sub.Clone()
		t.subtasks[stored.ID] = stored
		t.reserve(stored.Schedule)
		t.agenda.Upsert(stored)
		epic.AddSubtask(stored.ID)
	}

	for _, epic := range t.epics {
		t.recompute(epic)
	}

	for _, id := range snap.History {
		if it := t.lookup(id); it != nil {
			t.history.Add(it)
		}
	}

	t.lastID = max(maxID, snap.NextID-1)
	return t, nil
}
