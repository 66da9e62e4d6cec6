package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskboard/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info(1, "task", "test message")
	logger.Info(0, "store", "global message")

	// Verify
	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO] [item-1] [task] test message")
	assert.Contains(t, string(content), "[INFO] [global] [store] global message")
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn) // Only warn and above
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug(1, "task", "debug message")
	logger.Info(1, "task", "info message")
	logger.Warn(1, "task", "warn message")
	logger.Error(1, "task", "error message")

	// Verify (debug and info should be filtered)
	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "[WARN]")
	assert.Contains(t, string(content), "[ERROR]")
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	// Should not panic or create anything
	logger.Info(1, "task", "test message")
	logger.Debug(1, "task", "debug message")
	logger.Warn(1, "task", "warn message")
	logger.Error(1, "task", "error message")
}

func TestLogger_LogFormat(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info(42, "usecase", `task created: "my task"`)

	// Verify format: [timestamp] [INFO] [item-42] [usecase] message
	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	pattern := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[INFO\] \[item-42\] \[usecase\] task created: "my task"$`)
	assert.Regexp(t, pattern, lines[0])
}

func TestLogger_CloseAndReopen(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)

	logger.Info(1, "task", "first")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close(), "double close is harmless")

	// Writing after close reopens in append mode
	logger.Info(1, "task", "second")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), "\n"))
}

func TestLogger_CreateLogsDir(t *testing.T) {
	dataDir := t.TempDir()
	logsDir := filepath.Join(dataDir, "logs")

	_, err := os.Stat(logsDir)
	assert.True(t, os.IsNotExist(err))

	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()
	logger.Info(1, "task", "test message")

	stat, err := os.Stat(logsDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}
