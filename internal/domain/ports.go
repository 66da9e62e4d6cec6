package domain

import (
	"context"
	"time"
)

// Snapshot is the complete persisted state of a tracker.
// Fields are ordered to minimize memory padding.
type Snapshot struct {
	Tasks    []*Task    // Standalone tasks
	Epics    []*Epic    // Epics (subtask lists are rebuilt from Subtasks)
	Subtasks []*Subtask // Subtasks
	History  []int      // Viewed item IDs, oldest first
	NextID   int        // Next identity to assign
}

// Empty reports whether the snapshot holds no items.
func (s *Snapshot) Empty() bool {
	return len(s.Tasks) == 0 && len(s.Epics) == 0 && len(s.Subtasks) == 0
}

// SnapshotStore persists tracker snapshots.
type SnapshotStore interface {
	// IsInitialized reports whether the backing store exists.
	IsInitialized() bool

	// Initialize creates the backing store if it doesn't exist.
	Initialize() error

	// Load returns the stored snapshot, or an empty one if nothing was saved yet.
	// A snapshot that cannot be decoded fails as a whole.
	Load(ctx context.Context) (*Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap *Snapshot) error
}

// HistoryManager records recently viewed items.
type HistoryManager interface {
	// Add records item as the most recently viewed. A previous entry with the
	// same ID is replaced.
	Add(item Item)

	// Remove evicts the item with the given ID, if present.
	Remove(id int)

	// History returns the viewed items, oldest first.
	History() []Item
}

// Logger writes operational logs.
type Logger interface {
	Info(itemID int, category, msg string)
	Debug(itemID int, category, msg string)
	Warn(itemID int, category, msg string)
	Error(itemID int, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (data dir + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetDataConfigInfo returns information about the data directory config file.
	GetDataConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitDataConfig writes a config file into the data directory.
	// Returns ErrConfigExists if one is already present.
	InitDataConfig(cfg *Config) error

	// InitGlobalConfig writes the global config file.
	InitGlobalConfig(cfg *Config) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
