// Package sqlstore provides a SQLite implementation of SnapshotStore built
// on GORM.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/infra/record"
)

// Store implements domain.SnapshotStore using a SQLite database.
type Store struct {
	db   *gorm.DB
	path string
	mu   sync.Mutex
}

// New creates a Store for the database file at path. The file is opened
// on first use.
func New(path string) *Store {
	return &Store{path: path}
}

// NewWithDB creates a Store over an already opened database.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// open returns the database, opening it on first use.
// Callers must hold s.mu.
func (s *Store) open() (*gorm.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.db = db
	return db, nil
}

// IsInitialized reports whether the schema exists.
func (s *Store) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		if _, err := os.Stat(s.path); err != nil {
			return false
		}
	}
	db, err := s.open()
	if err != nil {
		return false
	}
	return db.Migrator().HasTable(&itemRow{})
}

// Initialize creates the database file and migrates the schema.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&itemRow{}, &historyRow{}, &metaRow{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	if err := db.Where(metaRow{Key: metaNextID}).FirstOrCreate(&metaRow{Key: metaNextID, Value: 1}).Error; err != nil {
		return fmt.Errorf("seed meta: %w", err)
	}
	return nil
}

// Load reads all tables. A database without a schema yields an empty snapshot.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	db = db.WithContext(ctx)
	if !db.Migrator().HasTable(&itemRow{}) {
		return &domain.Snapshot{}, nil
	}

	var rows []itemRow
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	var hist []historyRow
	if err := db.Order("position").Find(&hist).Error; err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	var meta metaRow
	nextID := 0
	err = db.First(&meta, "key = ?", metaNextID).Error
	switch {
	case err == nil:
		nextID = meta.Value
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("load meta: %w", err)
	}

	recs := make([]record.Record, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, toRecord(r))
	}
	history := make([]int, 0, len(hist))
	for _, h := range hist {
		history = append(history, h.ItemID)
	}
	return record.ToSnapshot(recs, history, nextID)
}

// Save replaces every table's content in one transaction.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.open()
	if err != nil {
		return err
	}

	recs := record.FromSnapshot(snap)
	rows := make([]itemRow, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, fromRecord(r))
	}
	hist := make([]historyRow, 0, len(snap.History))
	for i, id := range snap.History {
		hist = append(hist, historyRow{Position: i + 1, ItemID: id})
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&itemRow{}).Error; err != nil {
			return fmt.Errorf("clear items: %w", err)
		}
		if err := all.Delete(&historyRow{}).Error; err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		if err := all.Delete(&metaRow{}).Error; err != nil {
			return fmt.Errorf("clear meta: %w", err)
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
				return fmt.Errorf("insert items: %w", err)
			}
		}
		if len(hist) > 0 {
			if err := tx.Create(&hist).Error; err != nil {
				return fmt.Errorf("insert history: %w", err)
			}
		}
		if err := tx.Create(&metaRow{Key: metaNextID, Value: snap.NextID}).Error; err != nil {
			return fmt.Errorf("insert meta: %w", err)
		}
		return nil
	})
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}

func toRecord(r itemRow) record.Record {
	return record.Record{
		ID:          r.ID,
		Kind:        domain.Kind(r.Kind),
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.Status(r.Status),
		EpicID:      r.EpicID,
		Start:       r.Start,
		Duration:    r.Duration,
	}
}

func fromRecord(r record.Record) itemRow {
	return itemRow{
		ID:          r.ID,
		Kind:        string(r.Kind),
		Title:       r.Title,
		Description: r.Description,
		Status:      string(r.Status),
		EpicID:      r.EpicID,
		Start:       r.Start,
		Duration:    r.Duration,
	}
}

var _ domain.SnapshotStore = (*Store)(nil)
