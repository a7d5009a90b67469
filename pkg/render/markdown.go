package render

import (
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/logging"
	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// MarkdownOptions configures Markdown rendering
type MarkdownOptions struct {
	// Style is a glamour standard style name, "auto" to follow the terminal
	// background, or the path of a JSON style file.
	Style string
	// WordWrap is the wrap column; zero uses the renderer width.
	WordWrap int
}

// Markdown renders Markdown source for the terminal
func (r *Renderer) Markdown(src string, opts MarkdownOptions) (string, error) {
	defer logging.LogOperationStart(r.logger, "markdown")()

	styleOpt, err := r.markdownStyle(opts.Style)
	if err != nil {
		return "", err
	}

	wrap := opts.WordWrap
	if wrap <= 0 {
		wrap = r.term.Width
	}

	tr, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(wrap),
		glamour.WithColorProfile(r.term.Profile),
		glamour.WithEmoji(),
	)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRenderingBackend, "failed to create markdown renderer")
	}

	out, err := tr.Render(src)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRenderingBackend, "failed to render markdown")
	}

	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Renderer) markdownStyle(name string) (glamour.TermRendererOption, error) {
	switch name {
	case "", "auto":
		name = glamourstyles.DarkStyle
		if !r.term.Dark {
			name = glamourstyles.LightStyle
		}
	}

	if cfg, ok := glamourstyles.DefaultStyles[name]; ok {
		return glamour.WithStyles(*cfg), nil
	}
	if _, err := os.Stat(name); err == nil {
		return glamour.WithStylePath(name), nil
	}
	return nil, errors.Newf(errors.ErrRenderingBackend, "unknown markdown style %q", name).
		WithDetail("style", name)
}

// MarkdownStyles lists the built-in Markdown style names
func MarkdownStyles() []string {
	names := make([]string, 0, len(glamourstyles.DefaultStyles))
	for name := range glamourstyles.DefaultStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
