package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects whether rendered output carries ANSI styling
type ColorMode int

const (
	// ColorAuto enables color only when writing to a color-capable terminal
	ColorAuto ColorMode = iota
	// ColorAlways forces styled output, even when piped
	ColorAlways
	// ColorNever strips all styling
	ColorNever
)

// String returns the string representation of the color mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a string into a ColorMode value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "force", "on":
		return ColorAlways, nil
	case "never", "none", "off":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode: %s", s)
	}
}

// DetectProfile determines the color profile to render with for the given
// writer, honoring NO_COLOR and whether the writer is a terminal.
func DetectProfile(w io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		if f, ok := w.(*os.File); ok && IsTerminal(f) {
			if p := termenv.NewOutput(f).ColorProfile(); p != termenv.Ascii {
				return p
			}
		}
		return termenv.ANSI256
	}

	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}

	f, ok := w.(*os.File)
	if !ok || !IsTerminal(f) {
		return termenv.Ascii
	}

	return termenv.NewOutput(f).ColorProfile()
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
