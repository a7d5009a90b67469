package cli

import (
	"embed"
	"io"
	"io/fs"

	"github.com/arthur-debert/beautify/pkg/beautify"
	"github.com/arthur-debert/beautify/pkg/cobrax/topics"
	"github.com/spf13/cobra"
)

//go:embed help/*.md
var helpFS embed.FS

// initHelpTopics replaces the default help command with one that also
// renders the embedded topics through a printer
func initHelpTopics(rootCmd *cobra.Command, opts *rootOptions) error {
	sub, err := fs.Sub(helpFS, "help")
	if err != nil {
		return err
	}
	renderer := topics.RendererFunc(func(w io.Writer, content string, format string) error {
		p, err := newPrinterTo(w, opts)
		if err != nil {
			return err
		}
		if format == ".md" {
			return p.Print(content, beautify.WithMarkdown())
		}
		return p.Print(content)
	})
	_, err = topics.Initialize(rootCmd, sub, topics.Options{Renderer: renderer})
	return err
}
