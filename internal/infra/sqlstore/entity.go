package sqlstore

import "time"

// itemRow is one task, epic or subtask.
// Fields are ordered to minimize memory padding.
type itemRow struct {
	Start       *time.Time
	Title       string `gorm:"not null"`
	Description string
	Kind        string `gorm:"size:16;not null;index"`
	Status      string `gorm:"size:16;not null"`
	Duration    string `gorm:"size:32"`
	ID          int    `gorm:"primarykey;autoIncrement:false"`
	EpicID      int    `gorm:"index"`
}

// TableName returns the table name for itemRow.
func (itemRow) TableName() string {
	return "items"
}

// historyRow is one viewed item, ordered by Position (oldest first).
type historyRow struct {
	Position int `gorm:"primarykey;autoIncrement:false"`
	ItemID   int `gorm:"not null"`
}

// TableName returns the table name for historyRow.
func (historyRow) TableName() string {
	return "history"
}

// metaRow holds store-wide counters.
type metaRow struct {
	Key   string `gorm:"primarykey;size:32"`
	Value int    `gorm:"not null"`
}

// TableName returns the table name for metaRow.
func (metaRow) TableName() string {
	return "meta"
}

const metaNextID = "next_id"
