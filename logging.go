package main

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

const (
	logPrefix       = "depfilter"
	defaultLogLevel = log.WarnLevel
	envDebug        = "BP_DEBUG"
)

// setupLogger makes slog write to stderr, so that stdout contains only the result.
func setupLogger(level string) {
	logLevel := parseLogLevel(level)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: logPrefix,
		Level:  logLevel,
	})

	slog.SetDefault(slog.New(logger))
}

func parseLogLevel(level string) log.Level {
	if os.Getenv(envDebug) != "" {
		return log.DebugLevel
	}

	if level == "" {
		return defaultLogLevel
	}

	logLevel, err := log.ParseLevel(level)
	if err != nil {
		return defaultLogLevel
	}

	return logLevel
}
