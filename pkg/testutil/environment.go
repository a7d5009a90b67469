package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

// EnvPrefix is the prefix of the environment variables read as configuration
const EnvPrefix = "BEAUTIFY_"

// Environment is an isolated set of XDG directories
type Environment struct {
	Root       string
	ConfigHome string
	StateHome  string
}

// NewEnvironment points XDG_CONFIG_HOME and XDG_STATE_HOME at fresh
// directories and clears BEAUTIFY_* variables for the duration of the test
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	root := t.TempDir()
	env := &Environment{
		Root:       root,
		ConfigHome: filepath.Join(root, "config"),
		StateHome:  filepath.Join(root, "state"),
	}
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			// Setenv registers the restore, Unsetenv makes the key absent
			t.Setenv(key, "")
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}
	}

	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return env
}

// ConfigFile returns the path of a file in the application config directory
func (e *Environment) ConfigFile(app, name string) string {
	return filepath.Join(e.ConfigHome, app, name)
}
