// Package logging configures the process-wide slog logger.
//
// Spotter is a full-screen terminal program, so stderr is not a usable log
// sink while the UI is running. Logs always go to a rotated file instead;
// an empty path silences logging entirely.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 20
	maxBackups = 3
	maxAgeDays = 14
)

// Setup installs the default slog logger writing to path at the given level.
// It returns a cleanup function to flush and close the underlying file.
func Setup(path, level string) (func() error, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	if strings.TrimSpace(path) == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, opts)))
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		LocalTime:  true,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(lj, opts)))
	return lj.Close, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
