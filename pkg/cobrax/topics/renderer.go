package topics

import (
	"io"
	"strings"
)

// Renderer formats a topic for the terminal
type Renderer interface {
	// Render writes the topic to w. Format is the topic file extension.
	Render(w io.Writer, content string, format string) error
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(w io.Writer, content string, format string) error

func (f RendererFunc) Render(w io.Writer, content string, format string) error {
	return f(w, content, format)
}

// PlainRenderer writes content as-is
type PlainRenderer struct{}

// Render writes the content unchanged, ending with a newline
func (r *PlainRenderer) Render(w io.Writer, content string, format string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(w, content)
	return err
}
