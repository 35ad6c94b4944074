// Package logging configures the application loggers: console output at
// info level plus a rotating debug log file.
package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 10
	maxBackups = 5
)

// Setup builds the app logger. Console output goes to stderr at info
// level (debug when debug is set); everything down to debug level is also
// written to a rotating file under dir. An empty dir disables the file
// handler.
func Setup(name, dir string, debug bool) *slog.Logger {
	consoleLevel := slog.LevelInfo
	if debug {
		consoleLevel = slog.LevelDebug
	}
	console := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: consoleLevel})

	if dir == "" {
		return slog.New(console)
	}

	file := slog.NewTextHandler(&lumberjack.Logger{
		Filename:   filepath.Join(dir, name+".log"),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(fanout{console, file})
}

// fanout duplicates records to every handler that wants them.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
