package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Default configuration values.
const (
	DefaultStoreType     = StoreCSV
	DefaultNamespace     = "taskboard"
	DefaultHorizonMonths = 12
	DefaultHistoryLimit  = 10
	DefaultLogLevel      = "info"
)

// Store backends.
const (
	StoreCSV    = "csv"
	StoreJSON   = "json"
	StoreGit    = "git"
	StoreSQLite = "sqlite"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Store    StoreConfig    `toml:"store"`
	Schedule ScheduleConfig `toml:"schedule"`
	Log      LogConfig      `toml:"log"`
	History  HistoryConfig  `toml:"history"`
}

// StoreConfig holds settings from the [store] section.
type StoreConfig struct {
	Type      string `toml:"type,omitempty"`      // Backend: csv (default), json, git, sqlite
	Path      string `toml:"path,omitempty"`      // File or repository path (default: inside the data dir)
	Namespace string `toml:"namespace,omitempty"` // Ref namespace for the git backend
}

// ScheduleConfig holds settings from the [schedule] section.
// Fields are ordered to minimize memory padding.
type ScheduleConfig struct {
	HorizonStart  time.Time `toml:"horizon_start"`  // First bookable instant (zero = start of the current year)
	HorizonMonths int       `toml:"horizon_months"` // Length of the bookable horizon
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// HistoryConfig holds settings from the [history] section.
type HistoryConfig struct {
	Limit int `toml:"limit"` // Maximum remembered items (0 = unbounded)
}

// NewDefaultConfig returns a config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Type:      DefaultStoreType,
			Namespace: DefaultNamespace,
		},
		Schedule: ScheduleConfig{
			HorizonMonths: DefaultHorizonMonths,
		},
		History: HistoryConfig{
			Limit: DefaultHistoryLimit,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Horizon returns the bookable window. A zero HorizonStart resolves to
// January 1 of now's year in now's location.
func (c ScheduleConfig) Horizon(now time.Time) (start time.Time, end time.Time) {
	start = c.HorizonStart
	if start.IsZero() {
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	months := c.HorizonMonths
	if months <= 0 {
		months = DefaultHorizonMonths
	}
	return start, start.AddDate(0, months, 0)
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreCSV, StoreJSON, StoreGit, StoreSQLite:
	default:
		return fmt.Errorf("unknown store type %q", c.Store.Type)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history limit cannot be negative: %d", c.History.Limit)
	}
	return nil
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// templateData holds the values rendered into a new config file.
type templateData struct {
	StoreType     string
	Namespace     string
	LogLevel      string
	HorizonMonths int
	HistoryLimit  int
}

// RenderConfigTemplate renders a commented config file from cfg.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		StoreType:     cfg.Store.Type,
		Namespace:     cfg.Store.Namespace,
		HorizonMonths: cfg.Schedule.HorizonMonths,
		HistoryLimit:  cfg.History.Limit,
		LogLevel:      cfg.Log.Level,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}
