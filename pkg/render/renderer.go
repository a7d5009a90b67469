// Package render adapts display requests onto the terminal rendering
// libraries: lipgloss for panels, rules and tables, glamour for Markdown
// and chroma for source code.
//
// Every method returns the complete rendered text. Nothing is written, so a
// failing render never leaves partial output behind.
package render

import (
	"io"

	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/logging"
	"github.com/arthur-debert/beautify/pkg/style"
	"github.com/arthur-debert/beautify/pkg/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// Renderer renders bodies for one destination writer
type Renderer struct {
	lg     *lipgloss.Renderer
	styles *style.Registry
	term   ui.Terminal
	logger zerolog.Logger
}

// New creates a renderer for w with the given terminal capabilities. A nil
// registry uses the default styles.
func New(w io.Writer, term ui.Terminal, styles *style.Registry) *Renderer {
	if styles == nil {
		styles = style.Default()
	}
	if term.Width <= 0 {
		term.Width = ui.DefaultWidth
	}

	lg := lipgloss.NewRenderer(w)
	lg.SetColorProfile(term.Profile)
	lg.SetHasDarkBackground(term.Dark)

	return &Renderer{
		lg:     lg,
		styles: styles,
		term:   term,
		logger: logging.GetLogger("render"),
	}
}

// Width returns the column budget used for layout
func (r *Renderer) Width() int {
	return r.term.Width
}

// Profile returns the color profile output is rendered with
func (r *Renderer) Profile() termenv.Profile {
	return r.term.Profile
}

// style builds a registered style
func (r *Renderer) style(name string) lipgloss.Style {
	return r.styles.Style(r.lg, name)
}

// parseSpec resolves a style spec ("bold cyan") or registered style name
func (r *Renderer) parseSpec(spec string) (style.StyleDef, error) {
	def, err := r.styles.ParseSpec(spec)
	if err != nil {
		return style.StyleDef{}, errors.Wrap(err, errors.ErrInvalidInput, "invalid style").WithDetail("style", spec)
	}
	return def, nil
}

// specStyle builds a lipgloss style from a style spec
func (r *Renderer) specStyle(spec string) (lipgloss.Style, error) {
	def, err := r.parseSpec(spec)
	if err != nil {
		return r.lg.NewStyle(), err
	}
	return r.styles.Build(r.lg, def), nil
}
