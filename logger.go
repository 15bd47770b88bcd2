package main

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger. Debug mode lowers the level
// so per-frame events (grab failures, relay stats) become visible.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
