package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a JSON slog logger on stdout and returns its handler so
// callers can later fan it out together with the DB handler. The level
// comes from LOG_LEVEL (debug, info, warn, error), defaulting to info.
func Setup() slog.Handler {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	slog.SetDefault(slog.New(handler))
	return handler
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
