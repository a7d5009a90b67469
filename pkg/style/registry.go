// Package style defines the visual styling for rendered output.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. The defaults live in styles.yaml (embedded) and can
// be overridden by a user file with the same layout:
//
//	colors:
//	  string: {light: "#16803C", dark: "#86EFAC"}
//	styles:
//	  pretty.key: {foreground: accent, bold: true}
//
// Styles are always built against a caller-supplied *lipgloss.Renderer so
// the color profile of the destination writer is respected.
package style

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Faint      bool   `yaml:"faint,omitempty"`
	Reverse    bool   `yaml:"reverse,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to style definitions
type Registry struct {
	colors map[string]lipgloss.AdaptiveColor
	styles map[string]StyleDef
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded styles.yaml
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(defaultStyles)
		if err != nil {
			panic(fmt.Sprintf("failed to load embedded styles: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Load parses a YAML style configuration
func Load(data []byte) (*Registry, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	reg := &Registry{
		colors: make(map[string]lipgloss.AdaptiveColor, len(config.Colors)),
		styles: make(map[string]StyleDef, len(config.Styles)),
	}
	for name, def := range config.Colors {
		reg.colors[strings.ToLower(name)] = lipgloss.AdaptiveColor{
			Light: def.Light,
			Dark:  def.Dark,
		}
	}
	for name, def := range config.Styles {
		for _, c := range []string{def.Foreground, def.Background} {
			if c != "" && !reg.knownColor(c) {
				return nil, fmt.Errorf("style %q: unknown color %q", name, c)
			}
		}
		reg.styles[name] = def
	}
	return reg, nil
}

// LoadFile reads a YAML style file and layers it over the default registry
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	user, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Default().Merge(user), nil
}

// Merge returns a new registry with other's entries taking precedence
func (r *Registry) Merge(other *Registry) *Registry {
	merged := &Registry{
		colors: make(map[string]lipgloss.AdaptiveColor, len(r.colors)+len(other.colors)),
		styles: make(map[string]StyleDef, len(r.styles)+len(other.styles)),
	}
	for _, src := range []*Registry{r, other} {
		for k, v := range src.colors {
			merged.colors[k] = v
		}
		for k, v := range src.styles {
			merged.styles[k] = v
		}
	}
	return merged
}

// Names returns the registered style names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Def looks up a style definition by name
func (r *Registry) Def(name string) (StyleDef, bool) {
	def, ok := r.styles[name]
	return def, ok
}

// Style builds the named style for lr. Unknown names yield an empty style.
func (r *Registry) Style(lr *lipgloss.Renderer, name string) lipgloss.Style {
	def, ok := r.styles[name]
	if !ok {
		return lr.NewStyle()
	}
	return r.Build(lr, def)
}

// Build constructs a lipgloss style from a style definition
func (r *Registry) Build(lr *lipgloss.Renderer, def StyleDef) lipgloss.Style {
	style := lr.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Faint {
		style = style.Faint(true)
	}
	if def.Reverse {
		style = style.Reverse(true)
	}

	if color, ok := r.Color(def.Foreground); ok {
		style = style.Foreground(color)
	}
	if color, ok := r.Color(def.Background); ok {
		style = style.Background(color)
	}

	return style
}

// Color resolves a color name: registry colors first, then the built-in
// palette, terminal color names, 256-color indexes and hex values.
func (r *Registry) Color(name string) (lipgloss.TerminalColor, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, false
	}
	if c, ok := r.colors[name]; ok {
		return c, true
	}
	if c, ok := palette[name]; ok {
		return c, true
	}
	if idx, ok := ansiNames[name]; ok {
		return lipgloss.Color(idx), true
	}
	if isHexColor(name) {
		return lipgloss.Color(name), true
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(name), true
	}
	return nil, false
}

func (r *Registry) knownColor(name string) bool {
	_, ok := r.Color(name)
	return ok
}

func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}
