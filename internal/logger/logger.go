package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON logger in prod and a text logger elsewhere. The
// service attribute tags every line so aggregated logs stay sortable.
func New(env string) *slog.Logger {
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h).With("service", "wealthwise-backend")
}
