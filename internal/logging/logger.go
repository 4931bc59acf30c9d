// Package logging builds the structured loggers used across intervaltimer.
// File output is JSON for later filtering; terminal output is text.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Log levels accepted in configuration.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger wraps slog and owns the log file, if any.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New creates a Logger. An empty path logs text to stderr, otherwise JSON
// is appended to the file at path.
func New(path string, level string) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if path == "" {
		return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, opts))}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{Logger: slog.New(slog.NewJSONHandler(file, opts)), file: file}, nil
}

// Close closes the log file. It is a no-op for stderr loggers.
func (logger *Logger) Close() error {
	if logger == nil || logger.file == nil {
		return nil
	}
	err := logger.file.Close()
	logger.file = nil
	return err
}

// ParseLevel converts a level name to slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
