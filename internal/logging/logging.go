// Package logging builds the diagnostic log sink used by confdoc.
//
// Loggers are plain [*slog.Logger] values with one extra level, [LevelTrace],
// below [slog.LevelDebug]. Every record carries a "log" attribute with the
// configured log name. Sinks never report write failures to callers; a
// broken log destination cannot change the result of an operation.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/calvinalkan/confdoc/internal/fs"
)

// LevelTrace is the most verbose level, used for per-insert records.
const LevelTrace = slog.LevelDebug - 4

// Stderr is the destination name that selects the error stream passed to
// [Open].
const Stderr = "-"

const (
	logFilePerms = 0o644
	logDirPerms  = 0o755
)

// ErrUnknownLevel is returned by [ParseLevel].
var ErrUnknownLevel = errors.New("unknown log level")

var levelNames = map[string]slog.Level{
	"trace":   LevelTrace,
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLevel converts a level name (case-insensitive) to a [slog.Level].
func ParseLevel(name string) (slog.Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (want trace, debug, info, warn or error)", ErrUnknownLevel, name)
	}

	return level, nil
}

// LevelName returns the display name of level, including TRACE.
func LevelName(level slog.Level) string {
	if level <= LevelTrace {
		return "TRACE"
	}

	return level.String()
}

// New returns a text logger writing to w at or above level.
func New(w io.Writer, name string, level slog.Leveler) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	})

	return slog.New(handler).With(slog.String("log", name))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Open builds a logger for dest. An empty dest or [Stderr] writes to
// errOut; anything else is a file path opened for appending through fsys,
// creating parent directories as needed. The returned closer releases the
// file and is a no-op for errOut.
func Open(fsys fs.FS, dest string, errOut io.Writer, name string, level slog.Leveler) (*slog.Logger, io.Closer, error) {
	if dest == "" || dest == Stderr {
		return New(errOut, name, level), nopCloser{}, nil
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := fsys.MkdirAll(dir, logDirPerms); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	file, err := fsys.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePerms)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return New(file, name, level), file, nil
}

// Trace logs msg at [LevelTrace].
func Trace(log *slog.Logger, msg string, args ...any) {
	log.Log(context.Background(), LevelTrace, msg, args...)
}

func replaceLevel(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.LevelKey {
		if level, ok := attr.Value.Any().(slog.Level); ok {
			attr.Value = slog.StringValue(LevelName(level))
		}
	}

	return attr
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
