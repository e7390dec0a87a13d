package router

import (
	"context"
	"log/slog"
)

// LevelTrace is the log level of per-flit events, one step below Debug.
const LevelTrace slog.Level = slog.LevelDebug - 1

// Trace logs a per-flit event.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}
