package main

import (
	"log/slog"
	"os"
)

// NewLogger returns the application's JSON slog.Logger at the given level,
// tagged with the program name so mixed log streams stay attributable.
func NewLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With(slog.String("program", "text-reader"))
}
