// Package logger configures JSON structured logging for the portal.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a slog.Logger that emits JSON structured logs to w.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault installs the JSON structured logger as the process-wide
// default. Pass nil to log to os.Stdout, which is what production does.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w))
}
