package config

import (
	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/ui"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the rendering defaults applied to every print call
type Config struct {
	Color     string           `koanf:"color" toml:"color"`
	Width     int              `koanf:"width" toml:"width"`
	Separator string           `koanf:"separator" toml:"separator"`
	Frame     string           `koanf:"frame" toml:"frame"`
	Styles    string           `koanf:"styles" toml:"styles"`
	Title     Title            `koanf:"title" toml:"title"`
	Panel     Panel            `koanf:"panel" toml:"panel"`
	Pretty    Pretty           `koanf:"pretty" toml:"pretty"`
	Code      Code             `koanf:"code" toml:"code"`
	Markdown  Markdown         `koanf:"markdown" toml:"markdown"`
	Table     Table            `koanf:"table" toml:"table"`
	Levels    map[string]Level `koanf:"levels" toml:"levels"`
}

// Title configures the rule drawn above a body when no panel is used
type Title struct {
	Width int    `koanf:"width" toml:"width"`
	Align string `koanf:"align" toml:"align"`
	Style string `koanf:"style" toml:"style"`
}

// Panel configures bordered panels
type Panel struct {
	Style  string `koanf:"style" toml:"style"`
	Expand bool   `koanf:"expand" toml:"expand"`
}

// Pretty configures the generic structured value printer
type Pretty struct {
	ExpandAll    bool `koanf:"expand_all" toml:"expand_all"`
	IndentGuides bool `koanf:"indent_guides" toml:"indent_guides"`
}

// Code configures syntax highlighting
type Code struct {
	Language    string `koanf:"language" toml:"language"`
	Theme       string `koanf:"theme" toml:"theme"`
	LineNumbers bool   `koanf:"line_numbers" toml:"line_numbers"`
}

// Markdown configures Markdown rendering
type Markdown struct {
	Style    string `koanf:"style" toml:"style"`
	WordWrap int    `koanf:"word_wrap" toml:"word_wrap"`
}

// Table configures tabular grids
type Table struct {
	HeaderStyle string `koanf:"header_style" toml:"header_style"`
	Border      string `koanf:"border" toml:"border"`
}

// Level is the preset used by a severity helper
type Level struct {
	Icon  string `koanf:"icon" toml:"icon"`
	Title string `koanf:"title" toml:"title"`
	Style string `koanf:"style" toml:"style"`
}

var (
	validFrames  = []string{"auto", "panel", "rule", "none"}
	validAligns  = []string{"left", "center", "right"}
	validBorders = []string{"rounded", "normal", "thick", "double", "hidden", "ascii", "markdown"}
)

// ColorMode returns the parsed color setting
func (c *Config) ColorMode() ui.ColorMode {
	mode, err := ui.ParseColorMode(c.Color)
	if err != nil {
		return ui.ColorAuto
	}
	return mode
}

// Validate checks enumerated settings and numeric ranges
func (c *Config) Validate() error {
	if _, err := ui.ParseColorMode(c.Color); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid color").WithDetail("key", "color")
	}
	if c.Width < 0 {
		return errors.Newf(errors.ErrConfigValid, "width must not be negative, got %d", c.Width).WithDetail("key", "width")
	}
	if c.Title.Width <= 0 {
		return errors.Newf(errors.ErrConfigValid, "title.width must be positive, got %d", c.Title.Width).WithDetail("key", "title.width")
	}
	if err := oneOf("frame", c.Frame, validFrames); err != nil {
		return err
	}
	if err := oneOf("title.align", c.Title.Align, validAligns); err != nil {
		return err
	}
	if err := oneOf("table.border", c.Table.Border, validBorders); err != nil {
		return err
	}
	return nil
}

// TOML renders the configuration in the same format as the defaults file
func (c *Config) TOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return string(data), nil
}

func oneOf(key, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return errors.Newf(errors.ErrConfigValid, "%s must be one of %v, got %q", key, allowed, value).
		WithDetail("key", key)
}
