package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironment(t *testing.T) {
	t.Setenv("BEAUTIFY_FRAME", "rule")

	env := NewEnvironment(t)

	assert.Equal(t, env.ConfigHome, xdg.ConfigHome)
	assert.Equal(t, env.StateHome, xdg.StateHome)
	_, set := os.LookupEnv("BEAUTIFY_FRAME")
	assert.False(t, set)
	assert.Equal(t, filepath.Join(env.ConfigHome, "beautify", "config.toml"), env.ConfigFile("beautify", "config.toml"))
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, filepath.Join(t.TempDir(), "a", "b", "c.txt"), "hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
