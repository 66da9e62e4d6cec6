// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/infra/record"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MemoryStore is an in-memory domain.SnapshotStore. Snapshots are copied
// through records on both Load and Save so callers never share state with
// the store.
// Fields are ordered to minimize memory padding.
type MemoryStore struct {
	LoadErr     error
	SaveErr     error
	InitErr     error
	records     []record.Record
	history     []int
	nextID      int
	SaveCalls   int
	Initialized bool
}

// NewMemoryStore creates an initialized, empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Initialized: true, nextID: 1}
}

// IsInitialized reports the Initialized flag.
func (m *MemoryStore) IsInitialized() bool {
	return m.Initialized
}

// Initialize marks the store initialized.
func (m *MemoryStore) Initialize() error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	if m.nextID == 0 {
		m.nextID = 1
	}
	return nil
}

// Load returns a copy of the stored snapshot.
func (m *MemoryStore) Load(_ context.Context) (*domain.Snapshot, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return record.ToSnapshot(slices.Clone(m.records), slices.Clone(m.history), m.nextID)
}

// Save replaces the stored snapshot with a copy of snap.
func (m *MemoryStore) Save(_ context.Context, snap *domain.Snapshot) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SaveCalls++
	m.records = record.FromSnapshot(snap)
	m.history = slices.Clone(snap.History)
	m.nextID = snap.NextID
	return nil
}

// Seed stores snap as if it had been saved, without counting a save call.
func (m *MemoryStore) Seed(snap *domain.Snapshot) {
	m.records = record.FromSnapshot(snap)
	m.history = slices.Clone(snap.History)
	m.nextID = snap.NextID
}

// Snapshot returns a copy of the stored snapshot and panics if it cannot be decoded.
func (m *MemoryStore) Snapshot() *domain.Snapshot {
	snap, err := record.ToSnapshot(slices.Clone(m.records), slices.Clone(m.history), m.nextID)
	if err != nil {
		panic(fmt.Sprintf("memory store holds invalid records: %v", err))
	}
	return snap
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitDataErr   error
	InitGlobalErr error
	DataInfo      domain.ConfigInfo
	GlobalInfo    domain.ConfigInfo
	InitDataCalls int
}

// GetDataConfigInfo returns DataInfo.
func (m *MockConfigManager) GetDataConfigInfo() domain.ConfigInfo {
	return m.DataInfo
}

// GetGlobalConfigInfo returns GlobalInfo.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// InitDataConfig records the call and renders cfg into DataInfo.
func (m *MockConfigManager) InitDataConfig(cfg *domain.Config) error {
	m.InitDataCalls++
	if m.InitDataErr != nil {
		return m.InitDataErr
	}
	m.DataInfo.Content = domain.RenderConfigTemplate(cfg)
	m.DataInfo.Exists = true
	return nil
}

// InitGlobalConfig renders cfg into GlobalInfo.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	if m.InitGlobalErr != nil {
		return m.InitGlobalErr
	}
	m.GlobalInfo.Content = domain.RenderConfigTemplate(cfg)
	m.GlobalInfo.Exists = true
	return nil
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	ItemID   int
}

// MockLogger is a domain.Logger that records every message.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, itemID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, ItemID: itemID, Category: category, Msg: msg})
}

// Info records an info message.
func (m *MockLogger) Info(itemID int, category, msg string) { m.add("INFO", itemID, category, msg) }

// Debug records a debug message.
func (m *MockLogger) Debug(itemID int, category, msg string) { m.add("DEBUG", itemID, category, msg) }

// Warn records a warning.
func (m *MockLogger) Warn(itemID int, category, msg string) { m.add("WARN", itemID, category, msg) }

// Error records an error message.
func (m *MockLogger) Error(itemID int, category, msg string) { m.add("ERROR", itemID, category, msg) }

// Messages returns the recorded messages in order.
func (m *MockLogger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Msg)
	}
	return out
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

var (
	_ domain.Clock         = (*MockClock)(nil)
	_ domain.SnapshotStore = (*MemoryStore)(nil)
	_ domain.ConfigManager = (*MockConfigManager)(nil)
	_ domain.Logger        = (*MockLogger)(nil)
	_ domain.Logger        = NopLogger{}
)
