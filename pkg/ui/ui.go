// Package ui detects the capabilities of the terminal output is written to:
// color profile, width and background brightness.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
)

// DefaultWidth is used when the writer is not a terminal
const DefaultWidth = 80

// Terminal describes the capabilities of an output writer
type Terminal struct {
	Profile termenv.Profile
	Width   int
	Dark    bool
}

// Detect inspects w and returns its capabilities. A positive width
// overrides the detected one.
func Detect(w io.Writer, mode ColorMode, width int) Terminal {
	t := Terminal{
		Profile: DetectProfile(w, mode),
		Width:   width,
		Dark:    HasDarkBackground(w),
	}
	if t.Width <= 0 {
		t.Width = Width(w, DefaultWidth)
	}
	return t
}

// Width returns the column count of w, or fallback when w is not a terminal
func Width(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok || !IsTerminal(f) {
		return fallback
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// HasDarkBackground queries the terminal behind w. Non-terminals are
// assumed to be dark.
func HasDarkBackground(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !IsTerminal(f) {
		return true
	}
	return termenv.NewOutput(f).HasDarkBackground()
}
