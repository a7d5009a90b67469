package beautify

import (
	"strings"

	"github.com/arthur-debert/beautify/pkg/config"
	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/render"
)

// Frame is the decoration drawn around a rendered body
type Frame int

const (
	// FrameAuto draws a panel when a title is set and nothing otherwise
	FrameAuto Frame = iota
	FramePanel
	// FrameRule draws a "──── title ────" line above the body
	FrameRule
	FrameNone
)

func (f Frame) String() string {
	switch f {
	case FramePanel:
		return "panel"
	case FrameRule:
		return "rule"
	case FrameNone:
		return "none"
	default:
		return "auto"
	}
}

// ParseFrame parses auto, panel, rule or none
func ParseFrame(s string) (Frame, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FrameAuto, nil
	case "panel":
		return FramePanel, nil
	case "rule":
		return FrameRule, nil
	case "none":
		return FrameNone, nil
	}
	return FrameAuto, errors.Newf(errors.ErrInvalidInput, "unknown frame %q", s).WithDetail("frame", s)
}

// Options are the resolved settings of one display request
type Options struct {
	Title     string
	Frame     Frame
	Mode      Mode
	Separator string

	Pretty   render.PrettyOptions
	Markdown render.MarkdownOptions
	Code     render.CodeOptions
	Table    render.TableOptions
	Panel    render.PanelOptions
	Rule     render.RuleOptions

	flags   Flags
	modeSet bool
}

// Option customizes a single print call
type Option func(*Options)

// newOptions starts from the configured defaults, applies opts and resolves
// the render mode
func newOptions(cfg *config.Config, opts []Option) Options {
	frame, _ := ParseFrame(cfg.Frame)
	o := Options{
		Frame:     frame,
		Separator: cfg.Separator,
		Pretty: render.PrettyOptions{
			ExpandAll:    cfg.Pretty.ExpandAll,
			IndentGuides: cfg.Pretty.IndentGuides,
		},
		Markdown: render.MarkdownOptions{
			Style:    cfg.Markdown.Style,
			WordWrap: cfg.Markdown.WordWrap,
		},
		Code: render.CodeOptions{
			Theme:       cfg.Code.Theme,
			LineNumbers: cfg.Code.LineNumbers,
		},
		Table: render.TableOptions{
			HeaderStyle: cfg.Table.HeaderStyle,
			Border:      cfg.Table.Border,
		},
		Panel: render.PanelOptions{
			Style:  cfg.Panel.Style,
			Expand: cfg.Panel.Expand,
		},
		Rule: render.RuleOptions{
			Width: cfg.Title.Width,
			Align: cfg.Title.Align,
			Style: cfg.Title.Style,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if !o.modeSet {
		o.Mode = ResolveMode(o.flags)
	}
	if o.Mode.Kind == ModeCode && o.Mode.Language == "" {
		o.Mode.Language = cfg.Code.Language
	}
	return o
}

// frame resolves FrameAuto against the title
func (o Options) frame() Frame {
	if o.Frame != FrameAuto {
		return o.Frame
	}
	if o.Title != "" {
		return FramePanel
	}
	return FrameNone
}

// WithTitle sets the title shown in the panel border or the rule
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithPanel frames the body in a bordered panel
func WithPanel() Option {
	return WithFrame(FramePanel)
}

// WithRule draws the title as a rule line above the body
func WithRule() Option {
	return WithFrame(FrameRule)
}

func WithFrame(f Frame) Option {
	return func(o *Options) { o.Frame = f }
}

// WithMarkdown renders the payload as Markdown
func WithMarkdown() Option {
	return func(o *Options) { o.flags.Markdown = true }
}

// WithCode highlights the payload as source code in language
func WithCode(language string) Option {
	return func(o *Options) {
		o.flags.Code = true
		if language != "" {
			o.flags.Language = language
		}
	}
}

// WithTable renders the payload as a grid
func WithTable() Option {
	return func(o *Options) { o.flags.Table = true }
}

// WithMode sets the render mode directly, ignoring mode flags
func WithMode(m Mode) Option {
	return func(o *Options) {
		o.Mode = m
		o.modeSet = true
	}
}

// WithFlags sets the mode switches at once. Switches already set stay set.
func WithFlags(f Flags) Option {
	return func(o *Options) {
		o.flags.Markdown = o.flags.Markdown || f.Markdown
		o.flags.Code = o.flags.Code || f.Code
		o.flags.Table = o.flags.Table || f.Table
		if f.Language != "" {
			o.flags.Language = f.Language
		}
	}
}

// WithTheme sets the syntax highlighting theme
func WithTheme(theme string) Option {
	return func(o *Options) { o.Code.Theme = theme }
}

func WithLineNumbers(on bool) Option {
	return func(o *Options) { o.Code.LineNumbers = on }
}

// WithMarkdownStyle sets the glamour style name or style file
func WithMarkdownStyle(name string) Option {
	return func(o *Options) { o.Markdown.Style = name }
}

// WithPanelStyle sets the panel border style, e.g. "bold cyan"
func WithPanelStyle(spec string) Option {
	return func(o *Options) { o.Panel.Style = spec }
}

func WithPanelExpand(expand bool) Option {
	return func(o *Options) { o.Panel.Expand = expand }
}

// WithTitleAlign aligns the rule title left, center or right
func WithTitleAlign(align string) Option {
	return func(o *Options) { o.Rule.Align = align }
}

func WithTitleWidth(width int) Option {
	return func(o *Options) { o.Rule.Width = width }
}

func WithTitleStyle(spec string) Option {
	return func(o *Options) { o.Rule.Style = spec }
}

// WithExpandAll puts every container entry on its own line
func WithExpandAll(on bool) Option {
	return func(o *Options) { o.Pretty.ExpandAll = on }
}

func WithIndentGuides(on bool) Option {
	return func(o *Options) { o.Pretty.IndentGuides = on }
}

// WithSeparator joins the values passed to Println
func WithSeparator(sep string) Option {
	return func(o *Options) { o.Separator = sep }
}

// WithTableBorder sets the grid border: rounded, normal, thick, double,
// hidden, ascii or markdown
func WithTableBorder(border string) Option {
	return func(o *Options) { o.Table.Border = border }
}
