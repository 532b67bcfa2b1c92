// Package logging installs a charmbracelet/log handler behind log/slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const timeFormat = "2006-01-02 15:04:05"

// DefaultFile is where the TUI writes its log so the terminal stays clean.
const DefaultFile = "debug.log"

// Setup makes a charmbracelet logger writing to w the slog default.
// level is one of debug, info, warn or error.
func Setup(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		ReportCaller:    lvl <= log.DebugLevel,
	})
	slog.SetDefault(slog.New(logger))
	return logger, nil
}

// OpenFile opens path for appending, creating it if needed.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
