package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	loggerInstance *slog.Logger
	once           sync.Once
)

// GetLogger returns the process-wide JSON logger
func GetLogger() *slog.Logger {
	once.Do(func() {
		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})

		loggerInstance = slog.New(handler)
		slog.SetDefault(loggerInstance)
	})

	return loggerInstance
}
