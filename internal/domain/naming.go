package domain

import "path/filepath"

// Data directory layout.
const (
	DataDirName    = ".taskboard"
	ConfigFileName = "config.toml"
	DataDirEnv     = "TASKBOARD_DIR"
)

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "taskboard")
}

// GlobalLogPath returns the path to the log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "taskboard.log")
}

// StorePath returns the default store location for the given backend.
func StorePath(dataDir, storeType string) string {
	switch storeType {
	case StoreJSON:
		return filepath.Join(dataDir, "tasks.json")
	case StoreSQLite:
		return filepath.Join(dataDir, "tasks.db")
	case StoreGit:
		return filepath.Join(dataDir, "repo")
	default:
		return filepath.Join(dataDir, "tasks.csv")
	}
}
