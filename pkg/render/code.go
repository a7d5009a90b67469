package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/logging"
	"github.com/muesli/termenv"
)

// CodeOptions configures syntax highlighting
type CodeOptions struct {
	// Language is a lexer name or alias ("go", "py", "yaml"). Empty means
	// guess from the source and fall back to plain text.
	Language string
	// Theme is a chroma style name; empty uses chroma's fallback style.
	Theme string
	// LineNumbers prefixes every line with its number.
	LineNumbers bool
}

// Code renders syntax-highlighted source
func (r *Renderer) Code(src string, opts CodeOptions) (string, error) {
	defer logging.LogOperationStart(r.logger, "code")()

	lexer, err := lexerFor(opts.Language, src)
	if err != nil {
		return "", err
	}

	theme := styles.Fallback
	if opts.Theme != "" {
		var ok bool
		if theme, ok = styles.Registry[strings.ToLower(opts.Theme)]; !ok {
			return "", errors.Newf(errors.ErrRenderingBackend, "unknown code theme %q", opts.Theme).
				WithDetail("theme", opts.Theme)
		}
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRenderingBackend, "failed to tokenise source").
			WithDetail("language", opts.Language)
	}

	var buf strings.Builder
	if err := formatterFor(r.term.Profile).Format(&buf, theme, iterator); err != nil {
		return "", errors.Wrap(err, errors.ErrRenderingBackend, "failed to highlight source")
	}

	out := strings.TrimRight(buf.String(), "\n")
	if opts.LineNumbers {
		out = r.withGutter(out)
	}
	return out, nil
}

func lexerFor(language, src string) (chroma.Lexer, error) {
	var lexer chroma.Lexer
	if language == "" {
		lexer = lexers.Analyse(src)
		if lexer == nil {
			lexer = lexers.Fallback
		}
	} else if lexer = lexers.Get(language); lexer == nil {
		return nil, errors.Newf(errors.ErrRenderingBackend, "unsupported language %q", language).
			WithDetail("language", language)
	}
	return chroma.Coalesce(lexer), nil
}

// formatterFor picks the chroma terminal formatter matching the profile
func formatterFor(profile termenv.Profile) chroma.Formatter {
	switch profile {
	case termenv.TrueColor:
		return formatters.TTY16m
	case termenv.ANSI256:
		return formatters.TTY256
	case termenv.ANSI:
		return formatters.TTY8
	default:
		return formatters.NoOp
	}
}

func (r *Renderer) withGutter(src string) string {
	lines := strings.Split(src, "\n")
	digits := len(strconv.Itoa(len(lines)))
	gutter := r.style("code.gutter")
	for i, line := range lines {
		lines[i] = gutter.Render(fmt.Sprintf("%*d │", digits, i+1)) + " " + line
	}
	return strings.Join(lines, "\n")
}

// CodeThemes lists the available syntax highlighting themes
func CodeThemes() []string {
	return styles.Names()
}

// Languages lists the names of the available lexers
func Languages() []string {
	return lexers.Names(false)
}
