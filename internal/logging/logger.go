package logging

import (
	"log/slog"
	"os"

	"gorm.io/gorm"
)

func level(appEnv string) slog.Level {
	if appEnv == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func stdoutHandler(appEnv string) slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level(appEnv)})
}

// Setup initializes the global slog logger with JSON output to stdout.
func Setup(appEnv string) {
	slog.SetDefault(slog.New(stdoutHandler(appEnv)))
}

// WithDatabase keeps stdout logging and also batches ERROR+ records into
// system_logs. Stop the returned handler on shutdown to flush it.
func WithDatabase(appEnv string, db *gorm.DB) *PGHandler {
	pg := NewPGHandler(db)
	slog.SetDefault(slog.New(NewMultiHandler(stdoutHandler(appEnv), pg)))
	return pg
}
