package beautify

import (
	"strings"

	"github.com/arthur-debert/beautify/pkg/errors"
)

// Level selects a severity preset
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelJSON    Level = "json"
)

// Levels lists every severity preset
var Levels = []Level{LevelDebug, LevelInfo, LevelSuccess, LevelWarning, LevelError, LevelJSON}

// ParseLevel parses a level name case-insensitively
func ParseLevel(s string) (Level, error) {
	name := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range Levels {
		if l == name {
			return l, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown level %q", s).WithDetail("level", s)
}

// LevelOptions returns the options a severity preset applies. An empty
// title uses the configured one.
func (p *Printer) LevelOptions(level Level, title string) ([]Option, error) {
	preset, ok := p.cfg.Levels[string(level)]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown level %q", level).WithDetail("level", string(level))
	}
	if title == "" {
		title = preset.Title
	}
	if preset.Icon != "" && title != "" {
		title = preset.Icon + " " + title
	}

	opts := []Option{
		WithFrame(FramePanel),
		WithTitle(title),
		WithPanelStyle(preset.Style),
	}
	if level == LevelJSON {
		opts = append(opts, WithExpandAll(true), WithIndentGuides(true))
	}
	return opts, nil
}

// PrintAs prints payload in a panel styled by the level's preset
func (p *Printer) PrintAs(level Level, payload interface{}, title string) error {
	opts, err := p.LevelOptions(level, title)
	if err != nil {
		return err
	}
	return p.Print(payload, opts...)
}

func (p *Printer) Debug(payload interface{}) error   { return p.PrintAs(LevelDebug, payload, "") }
func (p *Printer) Info(payload interface{}) error    { return p.PrintAs(LevelInfo, payload, "") }
func (p *Printer) Success(payload interface{}) error { return p.PrintAs(LevelSuccess, payload, "") }
func (p *Printer) Warning(payload interface{}) error { return p.PrintAs(LevelWarning, payload, "") }
func (p *Printer) Error(payload interface{}) error   { return p.PrintAs(LevelError, payload, "") }
func (p *Printer) JSON(payload interface{}) error    { return p.PrintAs(LevelJSON, payload, "") }

// PrintAs prints payload with a severity preset on the default printer
func PrintAs(level Level, payload interface{}, title string) error {
	return Default().PrintAs(level, payload, title)
}

func Debug(payload interface{}) error   { return Default().Debug(payload) }
func Info(payload interface{}) error    { return Default().Info(payload) }
func Success(payload interface{}) error { return Default().Success(payload) }
func Warning(payload interface{}) error { return Default().Warning(payload) }
func Error(payload interface{}) error   { return Default().Error(payload) }
func JSON(payload interface{}) error    { return Default().JSON(payload) }
