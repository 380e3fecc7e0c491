package main

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog.Logger on stdout filtered to level.
// Every component receives this logger through its constructor.
func NewLogger(level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
