package main

import (
	"io"
	"log/slog"

	"keyhook/internal/sessionlog"
)

const warningRingSize = 50

// newLogger tees warnings and errors into ring for the status command.
func newLogger(w io.Writer, level slog.Level, ring *sessionlog.Ring) *slog.Logger {
	base := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(sessionlog.NewTeeHandler(base, slog.LevelWarn, ring.Add))
}
