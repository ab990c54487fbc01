// pkg/logging/logging_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test verbosity mapping and logger helpers

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)
			t.Setenv(EnvDebug, "")

			SetupLogger(tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
			assert.FileExists(t, filepath.Join(tempDir, "utpm", "utpm.log"))
		})
	}
}

func TestSetupLogger_DebugEnv(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv(EnvDebug, "1")

	SetupLogger(0)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetupLogger(3)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "utpm", "utpm.log"), getLogFilePath())
	})

	t.Run("without XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "")
		got := getLogFilePath()
		assert.Contains(t, got, filepath.Join(".local", "state", "utpm", "utpm.log"))
	})
}

func TestSetupLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "dir", "utpm.log")

	f, err := setupLogFile(logPath)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("registry")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"registry"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "link")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, `"operation":"link"`)
}
