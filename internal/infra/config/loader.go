// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/taskboard/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the taskboard data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskboard)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (data dir + global).
// Data dir config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadLayer(l.globalPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	local, err := l.loadLayer(filepath.Join(l.dataDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- data dir (later takes precedence)
	cfg := domain.NewDefaultConfig()
	global.apply(cfg)
	local.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadGlobal returns only the global configuration over the defaults.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	global, err := l.loadLayer(l.globalPath())
	if err != nil {
		return nil, err
	}
	cfg := domain.NewDefaultConfig()
	global.apply(cfg)
	return cfg, nil
}

func (l *Loader) globalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// layer holds the values one config file sets. Nil means unset, so an
// explicit zero (e.g. history limit 0) still overrides.
type layer struct {
	storeType     *string
	storePath     *string
	namespace     *string
	horizonStart  *time.Time
	horizonMonths *int
	historyLimit  *int
	logLevel      *string
	warnings      []string
}

// loadLayer loads a configuration layer from a file.
func (l *Loader) loadLayer(path string) (*layer, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return convertRaw(raw), nil
}

// convertRaw converts the raw map to a layer and collects warnings.
func convertRaw(raw map[string]any) *layer {
	res := &layer{}
	var warnings []string
	warnType := func(section, key string, v any) {
		warnings = append(warnings, fmt.Sprintf("invalid value in [%s]: %s = %v", section, key, v))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "type":
					res.storeType = asString(v, func() { warnType(section, k, v) })
				case "path":
					res.storePath = asString(v, func() { warnType(section, k, v) })
				case "namespace":
					res.namespace = asString(v, func() { warnType(section, k, v) })
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "schedule":
			for k, v := range m {
				switch k {
				case "horizon_start":
					res.horizonStart = asTime(v, func() { warnType(section, k, v) })
				case "horizon_months":
					res.horizonMonths = asInt(v, func() { warnType(section, k, v) })
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [schedule]: %s", k))
				}
			}
		case "history":
			for k, v := range m {
				switch k {
				case "limit":
					res.historyLimit = asInt(v, func() { warnType(section, k, v) })
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [history]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.logLevel = asString(v, func() { warnType(section, k, v) })
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.warnings = warnings
	return res
}

// apply writes every set value onto cfg. A nil layer is a no-op.
func (ly *layer) apply(cfg *domain.Config) {
	if ly == nil {
		return
	}
	cfg.Warnings = append(cfg.Warnings, ly.warnings...)
	if ly.storeType != nil {
		cfg.Store.Type = *ly.storeType
	}
	if ly.storePath != nil {
		cfg.Store.Path = *ly.storePath
	}
	if ly.namespace != nil {
		cfg.Store.Namespace = *ly.namespace
	}
	if ly.horizonStart != nil {
		cfg.Schedule.HorizonStart = *ly.horizonStart
	}
	if ly.horizonMonths != nil {
		cfg.Schedule.HorizonMonths = *ly.horizonMonths
	}
	if ly.historyLimit != nil {
		cfg.History.Limit = *ly.historyLimit
	}
	if ly.logLevel != nil {
		cfg.Log.Level = *ly.logLevel
	}
}

func asString(v any, invalid func()) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	invalid()
	return nil
}

func asInt(v any, invalid func()) *int {
	if n, ok := v.(int64); ok {
		i := int(n)
		return &i
	}
	invalid()
	return nil
}

// asTime accepts offset date-times, local date-times, local dates, and
// strings in the CLI layout. Local values resolve in time.Local.
func asTime(v any, invalid func()) *time.Time {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case toml.LocalDateTime:
		t = x.AsTime(time.Local)
	case toml.LocalDate:
		t = x.AsTime(time.Local)
	case string:
		parsed, err := time.ParseInLocation(domain.TimeLayout, x, time.Local)
		if err != nil {
			parsed, err = time.ParseInLocation(time.DateOnly, x, time.Local)
		}
		if err != nil {
			invalid()
			return nil
		}
		t = parsed
	default:
		invalid()
		return nil
	}
	return &t
}
