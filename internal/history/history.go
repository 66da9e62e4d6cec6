// Package history remembers the most recently viewed items.
package history

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/runoshun/taskboard/internal/domain"
)

// Ensure Manager implements domain.HistoryManager.
var _ domain.HistoryManager = (*Manager)(nil)

// Manager is a bounded, deduplicated view history ordered oldest first.
type Manager struct {
	entries *linkedhashmap.Map
	limit   int
}

// New creates a history that keeps at most limit items (0 = unbounded).
func New(limit int) *Manager {
	if limit < 0 {
		limit = 0
	}
	return &Manager{
		entries: linkedhashmap.New(),
		limit:   limit,
	}
}

// Add records item as the most recently viewed.
func (m *Manager) Add(item domain.Item) {
	if item == nil {
		return
	}
	id := item.ItemID()
	// Re-inserting moves the entry to the end
	m.entries.Remove(id)
	m.entries.Put(id, item)

	for m.limit > 0 && m.entries.Size() > m.limit {
		it := m.entries.Iterator()
		if !it.First() {
			break
		}
		m.entries.Remove(it.Key())
	}
}

// Remove evicts the item with the given ID, if present.
func (m *Manager) Remove(id int) {
	m.entries.Remove(id)
}

// History returns the viewed items, oldest first.
func (m *Manager) History() []domain.Item {
	values := m.entries.Values()
	items := make([]domain.Item, 0, len(values))
	for _, v := range values {
		items = append(items, v.(domain.Item))
	}
	return items
}

// IDs returns the viewed item IDs, oldest first.
func (m *Manager) IDs() []int {
	keys := m.entries.Keys()
	ids := make([]int, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, k.(int))
	}
	return ids
}

// Len returns the number of remembered items.
func (m *Manager) Len() int {
	return m.entries.Size()
}
