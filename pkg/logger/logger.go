package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

func Init() {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
}

// With returns a child logger carrying a component attribute, for paths
// that log outside a request scope (dispatcher, sweep worker).
func With(component string) *slog.Logger {
	if Log == nil {
		Init()
	}
	return Log.With("component", component)
}
