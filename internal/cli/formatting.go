package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// stdoutIsTerminal reports whether help output can carry styling
func stdoutIsTerminal() bool {
	return ui.IsTerminal(os.Stdout)
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}

// PrintError reports err on w with the error code and details, if any
func PrintError(w io.Writer, err error) {
	if f, ok := w.(*os.File); !ok || !ui.IsTerminal(f) || os.Getenv("NO_COLOR") != "" {
		pterm.DisableStyling()
	}

	printer := pterm.Error.WithWriter(w)
	printer.Println(err.Error())

	details := errors.GetErrorDetails(err)
	if len(details) == 0 {
		return
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]pterm.BulletListItem, len(keys))
	for i, k := range keys {
		items[i] = pterm.BulletListItem{Level: 1, Text: k + ": " + formatDetail(details[k])}
	}
	_ = pterm.DefaultBulletList.WithWriter(w).WithItems(items).Render()
}

func formatDetail(v interface{}) string {
	switch x := v.(type) {
	case []string:
		return strings.Join(x, ", ")
	default:
		return strings.TrimSpace(strings.ReplaceAll(fmt.Sprint(x), "\n", " "))
	}
}
