// Package record converts tracker snapshots to and from the flat,
// backend-neutral rows that every store persists.
package record

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/runoshun/taskboard/internal/domain"
)

// Record is one persisted item. Start and Duration are both set or both empty.
// Fields are ordered to minimize memory padding.
type Record struct {
	Start       *time.Time    `json:"start,omitempty" yaml:"start,omitempty"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        domain.Kind   `json:"type" yaml:"type"`
	Status      domain.Status `json:"status" yaml:"status"`
	Duration    string        `json:"duration,omitempty" yaml:"duration,omitempty"`
	ID          int           `json:"id" yaml:"id"`
	EpicID      int           `json:"epicId,omitempty" yaml:"epicId,omitempty"`
}

// FromItem flattens a single item.
func FromItem(it domain.Item) Record {
	s := it.Summary()
	r := Record{
		ID:          s.ID,
		Kind:        s.Kind,
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Status,
		EpicID:      s.EpicID,
	}
	// Epic windows are derived and never persisted.
	if s.Scheduled && s.Kind != domain.KindEpic {
		start := s.Start
		r.Start = &start
		r.Duration = s.Duration.String()
	}
	return r
}

// FromSnapshot flattens a snapshot into records ordered by ID.
func FromSnapshot(snap *domain.Snapshot) []Record {
	out := make([]Record, 0, len(snap.Tasks)+len(snap.Epics)+len(snap.Subtasks))
	for _, t := range snap.Tasks {
		out = append(out, FromItem(t))
	}
	for _, e := range snap.Epics {
		out = append(out, FromItem(e))
	}
	for _, s := range snap.Subtasks {
		out = append(out, FromItem(s))
	}
	slices.SortFunc(out, func(a, b Record) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// ToSnapshot rebuilds a snapshot from records. The first bad record fails
// the whole conversion with a *domain.MalformedRecordError.
func ToSnapshot(recs []Record, history []int, nextID int) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{History: history, NextID: nextID}
	for _, r := range recs {
		it, err := r.Item()
		if err != nil {
			return nil, err
		}
		switch v := it.(type) {
		case *domain.Task:
			snap.Tasks = append(snap.Tasks, v)
		case *domain.Epic:
			snap.Epics = append(snap.Epics, v)
		case *domain.Subtask:
			snap.Subtasks = append(snap.Subtasks, v)
		}
	}
	return snap, nil
}

// Item decodes the record into its domain variant.
func (r Record) Item() (domain.Item, error) {
	kind, err := domain.ParseKind(string(r.Kind))
	if err != nil {
		return nil, malformed("TYPE", string(r.Kind), err)
	}
	status, err := domain.ParseStatus(string(r.Status))
	if err != nil {
		return nil, malformed("STATUS", string(r.Status), err)
	}
	sched, err := r.schedule()
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindEpic:
		return domain.RestoreEpic(r.ID, r.Title, r.Description, status), nil
	case domain.KindSubtask:
		if r.EpicID <= 0 {
			return nil, malformed("EPIC_ID", strconv.Itoa(r.EpicID), fmt.Errorf("subtask #%d has no epic", r.ID))
		}
		sub := domain.RestoreSubtask(r.ID, r.Title, r.Description, status, r.EpicID)
		sub.Schedule = sched
		return sub, nil
	default:
		task := domain.RestoreTask(r.ID, r.Title, r.Description, status)
		task.Schedule = sched
		return task, nil
	}
}

func (r Record) schedule() (*domain.Schedule, error) {
	switch {
	case r.Start == nil && r.Duration == "":
		return nil, nil
	case r.Start == nil:
		return nil, malformed("START_TIME", "", fmt.Errorf("duration %s without start time", r.Duration))
	case r.Duration == "":
		return nil, malformed("DURATION", "", errors.New("start time without duration"))
	}
	d, err := time.ParseDuration(r.Duration)
	if err != nil {
		return nil, malformed("DURATION", r.Duration, err)
	}
	s, err := domain.NewSchedule(*r.Start, d)
	if errors.Is(err, domain.ErrZeroStart) {
		return nil, malformed("START_TIME", "", err)
	}
	if err != nil {
		return nil, malformed("DURATION", r.Duration, err)
	}
	return s, nil
}

func malformed(field, value string, err error) *domain.MalformedRecordError {
	return &domain.MalformedRecordError{Field: field, Value: value, Err: err}
}
