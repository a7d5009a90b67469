package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger swaps the global logger for one writing into a buffer
func captureLogger(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(level)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

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
			xdg.Reload()
			prevLogger := log.Logger
			t.Cleanup(func() {
				log.Logger = prevLogger
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			})

			SetupLogger(tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, AppName, AppName+".log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should exist at %s", logPath)
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)
	xdg.Reload()

	got := getLogFilePath()
	assert.Equal(t, filepath.Join(tempDir, "beautify", "beautify.log"), got)
}

func TestGetLogger(t *testing.T) {
	buf := captureLogger(t, zerolog.DebugLevel)

	logger := GetLogger("render")
	logger.Debug().Msg("table rendered")

	assert.Contains(t, buf.String(), `"component":"render"`)
	assert.Contains(t, buf.String(), "table rendered")
}

func TestWithFields(t *testing.T) {
	buf := captureLogger(t, zerolog.InfoLevel)

	logger := WithFields(map[string]interface{}{
		"mode":  "table",
		"rows":  2,
		"panel": true,
	})
	logger.Info().Msg("rendered")

	out := buf.String()
	assert.Contains(t, out, `"mode":"table"`)
	assert.Contains(t, out, `"rows":2`)
	assert.Contains(t, out, `"panel":true`)
}

func TestLogOperationStart(t *testing.T) {
	buf := captureLogger(t, zerolog.TraceLevel)

	done := LogOperationStart(log.Logger, "markdown")
	require.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), `"duration"`)
}

func TestSetupLogFile(t *testing.T) {
	t.Run("creates parents and appends", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "nested", "state", "app.log")

		for _, line := range []string{"first\n", "second\n"} {
			f, err := setupLogFile(logPath)
			require.NoError(t, err)
			_, err = f.WriteString(line)
			require.NoError(t, err)
			require.NoError(t, f.Close())
		}

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond\n", string(data))
	})

	t.Run("unusable state dir falls back to console", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))
		t.Setenv("XDG_STATE_HOME", blocker)
		xdg.Reload()
		prevLogger := log.Logger
		t.Cleanup(func() {
			log.Logger = prevLogger
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		})

		_, err := setupLogFile(getLogFilePath())
		require.Error(t, err)

		assert.NotPanics(t, func() { SetupLogger(1) })
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})
}
