package render

import (
	"strings"

	"github.com/arthur-debert/beautify/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PanelOptions configures a bordered panel
type PanelOptions struct {
	// Title is embedded, centered, in the top border.
	Title string
	// Style is a style spec for the border ("bold cyan").
	Style string
	// Expand stretches the panel to the renderer width.
	Expand bool
}

// RuleOptions configures the title rule drawn above a body
type RuleOptions struct {
	Width int
	// Align is left, center or right.
	Align string
	Style string
}

// minTitleGap is the border kept on each side of a panel title
const minTitleGap = 2

// Panel wraps body in a rounded border
func (r *Renderer) Panel(body string, opts PanelOptions) (string, error) {
	def, err := r.parseSpec(opts.Style)
	if err != nil {
		return "", err
	}

	border := lipgloss.RoundedBorder()
	borderStyle := r.lg.NewStyle()
	box := r.lg.NewStyle().Border(border).Padding(0, 1)
	if color, ok := r.styles.Color(def.Foreground); ok {
		borderStyle = borderStyle.Foreground(color)
		box = box.BorderForeground(color)
	}

	// Width excludes the two border columns
	titleWidth := lipgloss.Width(opts.Title)
	switch {
	case opts.Expand:
		box = box.Width(r.term.Width - 2)
	case opts.Title != "":
		if need := titleWidth + 2 + 2*minTitleGap; lipgloss.Width(body)+2 < need {
			box = box.Width(min(need, r.term.Width-2))
		}
	}

	rendered := box.Render(body)
	if opts.Title == "" {
		return rendered, nil
	}

	lines := strings.Split(rendered, "\n")
	total := lipgloss.Width(lines[0])
	inner := total - 2

	title := opts.Title
	if maxTitle := inner - 2 - 2*minTitleGap; titleWidth > maxTitle {
		if maxTitle < 1 {
			return rendered, nil
		}
		title = ansi.Truncate(title, maxTitle, "…")
	}
	segment := " " + r.styles.Build(r.lg, r.titleDef(def)).Render(title) + " "
	segWidth := lipgloss.Width(segment)
	left := (inner - segWidth) / 2
	right := inner - segWidth - left

	lines[0] = borderStyle.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		segment +
		borderStyle.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n"), nil
}

// titleDef styles a panel title with the border color unless the
// registry's panel.title style sets its own
func (r *Renderer) titleDef(border style.StyleDef) style.StyleDef {
	def, _ := r.styles.Def("panel.title")
	if def.Foreground == "" {
		def.Foreground = border.Foreground
	}
	return def
}

// Rule renders "──── title ────" aligned within the rule width
func (r *Renderer) Rule(title string, opts RuleOptions) (string, error) {
	st, err := r.specStyle(opts.Style)
	if err != nil {
		return "", err
	}

	width := opts.Width
	if width <= 0 || width > r.term.Width {
		width = r.term.Width
	}
	tw := lipgloss.Width(title)

	var line string
	switch opts.Align {
	case "left":
		line = title + " " + rule(width-tw-1)
	case "right":
		line = rule(width-tw-1) + " " + title
	default:
		left := (width - tw - 2) / 2
		line = rule(left) + " " + title + " " + rule(width-tw-2-left)
	}
	return st.Render(line), nil
}

func rule(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("─", n)
}
