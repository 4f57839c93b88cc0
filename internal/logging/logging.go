// Package logging builds the slog handles passed to every component.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the log file written under the log directory.
const FileName = "newsletter_workflow.log"

// ParseLevel maps a level name to a slog level. Unknown names yield info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is a slog logger together with the file it writes to.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *os.File
}

// New returns a text logger writing to w and, when dir is non-empty, to
// dir/newsletter_workflow.log as well. Close releases the file.
func New(level string, w io.Writer, dir string) (*Logger, error) {
	lvl := new(slog.LevelVar)
	lvl.Set(ParseLevel(level))

	l := &Logger{level: lvl}
	out := w
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		out = io.MultiWriter(w, f)
	}

	l.Logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl}))
	return l, nil
}

// SetLevel changes the level of l and every logger derived from it.
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
