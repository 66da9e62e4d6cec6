// Package agenda keeps scheduled tasks and subtasks ordered by start time.
package agenda

import (
	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/runoshun/taskboard/internal/domain"
)

// key orders entries by start time, then by ID so equal start times
// (zero-length schedules) do not collide.
type key struct {
	start int64
	id    int
}

func compareKeys(a, b interface{}) int {
	ka := a.(key)
	kb := b.(key)
	switch {
	case ka.start < kb.start:
		return -1
	case ka.start > kb.start:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}

// View is an ordered set of scheduled items keyed by identity.
// Epics are never added.
type View struct {
	tree *redblacktree.Tree
	keys map[int]key
}

// New creates an empty view.
func New() *View {
	return &View{
		tree: redblacktree.NewWith(compareKeys),
		keys: make(map[int]key),
	}
}

// Upsert (re-)inserts item if it is a scheduled task or subtask. An item
// that lost its schedule is removed.
func (v *View) Upsert(item domain.Item) {
	if item == nil {
		return
	}
	v.Remove(item.ItemID())

	var sched *domain.Schedule
	switch it := item.(type) {
	case *domain.Task:
		sched = it.Schedule
	case *domain.Subtask:
		sched = it.Schedule
	default:
		return
	}
	if sched == nil {
		return
	}

	k := key{start: sched.Start.UnixNano(), id: item.ItemID()}
	v.tree.Put(k, item)
	v.keys[k.id] = k
}

// Remove deletes the entry with the given ID regardless of its current start time.
func (v *View) Remove(id int) {
	k, ok := v.keys[id]
	if !ok {
		return
	}
	v.tree.Remove(k)
	delete(v.keys, id)
}

// Clear removes all entries.
func (v *View) Clear() {
	v.tree.Clear()
	v.keys = make(map[int]key)
}

// Len returns the number of entries.
func (v *View) Len() int {
	return v.tree.Size()
}

// List returns a snapshot of the entries in ascending start time.
func (v *View) List() []domain.Item {
	values := v.tree.Values()
	items := make([]domain.Item, 0, len(values))
	for _, val := range values {
		items = append(items, val.(domain.Item))
	}
	return items
}
