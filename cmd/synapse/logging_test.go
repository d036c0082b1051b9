package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	logger, f := setupLogging(false)
	assert.Nil(t, f)
	require.NotNil(t, logger)
	assert.Equal(t, io.Discard, log.Writer())
}

func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)

	logger, f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()

	logger.Debug("debug line", "k", 1)
	log.Println("legacy line")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
	assert.Contains(t, string(data), "legacy line")

	assert.NotEqual(t, os.Stdout, log.Writer())
	assert.NotEqual(t, os.Stderr, log.Writer())

	// Leave the log package quiet for other tests
	setupLogging(false)
}

func TestSetupLoggingRotation(t *testing.T) {
	defer os.RemoveAll(logDir)
	require.NoError(t, os.MkdirAll(logDir, 0o755))

	path := filepath.Join(logDir, logFileName)
	require.NoError(t, os.WriteFile(path, make([]byte, maxLogSize+1), 0o644))

	_, f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()
	defer setupLogging(false)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)

	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	assert.True(t, rotated, "expected a rotated log file")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}
