package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "synapse.log"
	maxLogSize  = 10 * 1024 * 1024 // 10 MiB
)

// setupLogging routes log and slog output to logs/synapse.log when debug is set
// The terminal owns stdout while the sandbox runs, so nothing is ever written there.
// The returned file is nil when logging is disabled.
func setupLogging(debug bool) (*slog.Logger, *os.File) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	if !debug {
		log.SetOutput(io.Discard)
		return discard, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return discard, nil
	}

	path := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("synapse_%s.log", time.Now().Format("20060102_150405")))
		os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return discard, nil
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger) // Also captures the log package
	logger.Info("logging started", "pid", os.Getpid())
	return logger, f
}
