package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/beautify/internal/version"
	"github.com/arthur-debert/beautify/pkg/beautify"
	"github.com/arthur-debert/beautify/pkg/config"
	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/input"
	"github.com/arthur-debert/beautify/pkg/logging"
	"github.com/arthur-debert/beautify/pkg/render"
	"github.com/arthur-debert/beautify/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// rootOptions holds the flags shared by every command
type rootOptions struct {
	verbosity  int
	configPath string
	color      string
	width      int

	from        string
	title       string
	panel       bool
	rule        bool
	markdown    bool
	code        bool
	language    string
	table       bool
	theme       string
	lineNumbers bool
	level       string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "bprint [file]",
		Short: "Pretty-print data, Markdown and code in the terminal",
		Long: `bprint renders a file, or standard input, for the terminal.

JSON, YAML, TOML and XML documents are decoded and printed as structured
values or tables. Markdown is rendered and source code is syntax highlighted.`,
		Example: `  # Pretty-print a JSON document in a titled panel
  bprint data.json --title Result

  # Records as a table
  kubectl get pods -o json | jq .items | bprint --table

  # Render Markdown
  bprint -m README.md

  # Highlight code, guessing the language from the file name
  bprint -c --line-numbers main.go`,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringVar(&opts.configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/beautify/config.toml)")
	pf.StringVar(&opts.color, "color", "", "Color output: auto, always or never")
	pf.IntVar(&opts.width, "width", 0, "Layout width (default is the terminal width)")

	f := rootCmd.Flags()
	f.StringVar(&opts.from, "from", "auto", "Input format: auto, json, yaml, toml, xml or text")
	f.StringVarP(&opts.title, "title", "t", "", "Title shown in the panel border or rule")
	f.BoolVar(&opts.panel, "panel", false, "Frame the output in a panel")
	f.BoolVar(&opts.rule, "rule", false, "Draw the title as a rule above the output")
	f.BoolVarP(&opts.markdown, "markdown", "m", false, "Render the input as Markdown")
	f.BoolVarP(&opts.code, "code", "c", false, "Syntax highlight the input")
	f.StringVarP(&opts.language, "language", "l", "", "Language for --code (default guesses from the file)")
	f.BoolVar(&opts.table, "table", false, "Render records as a table")
	f.StringVar(&opts.theme, "theme", "", "Syntax highlighting theme for --code")
	f.BoolVar(&opts.lineNumbers, "line-numbers", false, "Number lines with --code")
	f.StringVar(&opts.level, "level", "", "Severity preset: debug, info, success, warning, error or json")
	rootCmd.MarkFlagsMutuallyExclusive("panel", "rule")

	initTemplateFormatting()
	if err := initHelpTopics(rootCmd, opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newStylesCmd(opts))
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// newPrinter loads the configuration selected by the global flags and
// builds a printer for the command's output
func newPrinter(cmd *cobra.Command, opts *rootOptions) (*beautify.Printer, error) {
	return newPrinterTo(cmd.OutOrStdout(), opts)
}

func newPrinterTo(w io.Writer, opts *rootOptions) (*beautify.Printer, error) {
	overrides := map[string]interface{}{}
	if opts.color != "" {
		if _, err := ui.ParseColorMode(opts.color); err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --color").WithDetail("flag", "color")
		}
		overrides["color"] = opts.color
	}
	if opts.width > 0 {
		overrides["width"] = opts.width
	}

	cfg, err := config.Load(config.Options{Path: opts.configPath, Overrides: overrides})
	if err != nil {
		return nil, err
	}
	return beautify.NewPrinter(w, beautify.WithConfig(cfg))
}

func runPrint(cmd *cobra.Command, opts *rootOptions, args []string) error {
	format, err := input.ParseFormat(opts.from)
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd, opts)
	if err != nil {
		return err
	}

	name := "-"
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		name = args[0]
		file, err := os.Open(name)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInputDecode, "cannot open %s", name).WithDetail("name", name)
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	// Markdown and code are rendered from the raw text
	if format == input.FormatAuto && (opts.markdown || opts.code) {
		format = input.FormatText
	}
	payload, used, err := input.Decode(r, name, format)
	if err != nil {
		return err
	}

	printOpts, err := printOptions(p, opts, name)
	if err != nil {
		return err
	}

	logger := logging.WithFields(map[string]interface{}{
		"component": "cli",
		"input":     name,
		"format":    string(used),
	})
	logger.Info().Msg("Printing")
	return p.Print(payload, printOpts...)
}

// printOptions translates the command line into print options
func printOptions(p *beautify.Printer, opts *rootOptions, name string) ([]beautify.Option, error) {
	var out []beautify.Option

	if opts.level != "" {
		level, err := beautify.ParseLevel(opts.level)
		if err != nil {
			return nil, err
		}
		levelOpts, err := p.LevelOptions(level, opts.title)
		if err != nil {
			return nil, err
		}
		out = append(out, levelOpts...)
	} else if opts.title != "" {
		out = append(out, beautify.WithTitle(opts.title))
	}

	switch {
	case opts.panel:
		out = append(out, beautify.WithPanel())
	case opts.rule:
		out = append(out, beautify.WithRule())
	}

	language := opts.language
	if opts.code && language == "" {
		language = input.Language(name)
	}
	out = append(out, beautify.WithFlags(beautify.Flags{
		Markdown: opts.markdown,
		Code:     opts.code,
		Table:    opts.table,
		Language: language,
	}))

	if opts.theme != "" {
		out = append(out, beautify.WithTheme(opts.theme))
	}
	if opts.lineNumbers {
		out = append(out, beautify.WithLineNumbers(true))
	}
	return out, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "bprint version %s\n", version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after layering the built-in defaults, the user
config file and BEAUTIFY_* environment variables.

The user config file is read from ` + filepath.Join("$XDG_CONFIG_HOME", config.AppName, "config.toml") + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(cmd, opts)
			if err != nil {
				return err
			}
			data, err := p.Config().TOML()
			if err != nil {
				return err
			}
			return p.Print(strings.TrimRight(data, "\n"), beautify.WithCode("toml"))
		},
	}
}

// styleRow is one line of the styles listing
type styleRow struct {
	Kind string
	Name string
}

// styleKinds lists the styles listing sources in display order
var styleKinds = []struct {
	kind  string
	names func() []string
}{
	{"markdown", render.MarkdownStyles},
	{"code", render.CodeThemes},
	{"language", render.Languages},
}

func newStylesCmd(opts *rootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List Markdown styles, code themes and languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(cmd, opts)
			if err != nil {
				return err
			}

			var rows []styleRow
			matched := false
			for _, k := range styleKinds {
				if kind != "" && kind != k.kind {
					continue
				}
				matched = true
				for _, name := range k.names() {
					rows = append(rows, styleRow{Kind: k.kind, Name: name})
				}
			}
			if !matched {
				return errors.Newf(errors.ErrInvalidInput, "unknown style kind %q", kind).
					WithDetail("flag", "kind").
					WithDetail("allowed", []string{"markdown", "code", "language"})
			}
			return p.Print(rows, beautify.WithTable())
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only list one kind: markdown, code or language")
	return cmd
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "BPRINT",
				Section: "1",
				Source:  "bprint " + version.Version,
				Manual:  "bprint manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
