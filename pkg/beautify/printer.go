package beautify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/arthur-debert/beautify/pkg/config"
	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/logging"
	"github.com/arthur-debert/beautify/pkg/render"
	"github.com/arthur-debert/beautify/pkg/style"
	"github.com/arthur-debert/beautify/pkg/ui"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// Request is a payload together with its resolved options
type Request struct {
	Payload interface{}
	Options Options
}

// Printer renders display requests and writes them to one writer.
// Rendering is side-effect free; writes are serialized so blocks printed
// from several goroutines never interleave.
type Printer struct {
	mu       sync.Mutex
	w        io.Writer
	cfg      *config.Config
	renderer *render.Renderer
	logger   zerolog.Logger
}

type printerSettings struct {
	cfg     *config.Config
	color   *ui.ColorMode
	width   int
	profile *termenv.Profile
	styles  *style.Registry
}

// PrinterOption configures a Printer
type PrinterOption func(*printerSettings)

// WithConfig uses cfg instead of the embedded defaults
func WithConfig(cfg *config.Config) PrinterOption {
	return func(s *printerSettings) { s.cfg = cfg }
}

// WithColorMode overrides the configured color setting
func WithColorMode(mode ui.ColorMode) PrinterOption {
	return func(s *printerSettings) { s.color = &mode }
}

// WithWidth fixes the layout width instead of detecting it
func WithWidth(width int) PrinterOption {
	return func(s *printerSettings) { s.width = width }
}

// WithColorProfile forces a color profile, bypassing detection
func WithColorProfile(profile termenv.Profile) PrinterOption {
	return func(s *printerSettings) { s.profile = &profile }
}

// WithStyles uses reg instead of the configured style registry
func WithStyles(reg *style.Registry) PrinterOption {
	return func(s *printerSettings) { s.styles = reg }
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, opts ...PrinterOption) (*Printer, error) {
	settings := printerSettings{}
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.cfg == nil {
		settings.cfg = config.Default()
	}
	cfg := settings.cfg

	mode := cfg.ColorMode()
	if settings.color != nil {
		mode = *settings.color
	}
	width := cfg.Width
	if settings.width > 0 {
		width = settings.width
	}
	term := ui.Detect(w, mode, width)
	if settings.profile != nil {
		term.Profile = *settings.profile
	}

	reg := settings.styles
	if reg == nil && cfg.Styles != "" {
		var err error
		if reg, err = style.LoadFile(cfg.Styles); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load styles").
				WithDetail("path", cfg.Styles)
		}
	}

	renderer := render.New(w, term, reg)
	logger := logging.GetLogger("beautify")
	logger.Debug().
		Str("profile", profileName(renderer.Profile())).
		Int("width", renderer.Width()).
		Bool("dark", term.Dark).
		Msg("Created printer")

	return &Printer{
		w:        w,
		cfg:      cfg,
		renderer: renderer,
		logger:   logger,
	}, nil
}

// Config returns the configuration the printer was built with
func (p *Printer) Config() *config.Config {
	return p.cfg
}

// Request resolves opts against the printer's configuration
func (p *Printer) Request(payload interface{}, opts ...Option) Request {
	return Request{Payload: payload, Options: newOptions(p.cfg, opts)}
}

// Render returns the text a request displays
func (p *Printer) Render(req Request) (string, error) {
	o := req.Options
	body, err := p.body(req.Payload, o)
	if err != nil {
		return "", err
	}

	switch o.frame() {
	case FramePanel:
		panel := o.Panel
		panel.Title = o.Title
		return p.renderer.Panel(body, panel)
	case FrameRule:
		if o.Title == "" {
			return body, nil
		}
		line, err := p.renderer.Rule(o.Title, o.Rule)
		if err != nil {
			return "", err
		}
		return line + "\n" + body, nil
	default:
		return body, nil
	}
}

func (p *Printer) body(payload interface{}, o Options) (string, error) {
	switch o.Mode.Kind {
	case ModeMarkdown:
		return p.renderer.Markdown(text(payload), o.Markdown)
	case ModeCode:
		code := o.Code
		code.Language = o.Mode.Language
		return p.renderer.Code(text(payload), code)
	case ModeTable:
		return p.renderer.Table(payload, o.Table)
	default:
		return p.renderer.Pretty(payload, o.Pretty), nil
	}
}

// Display renders req and writes it followed by a newline. Nothing is
// written when rendering fails.
func (p *Printer) Display(req Request) error {
	out, err := p.Render(req)
	if err != nil {
		p.logger.Debug().Err(err).Str("mode", req.Options.Mode.String()).Msg("Render failed")
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, out+"\n"); err != nil {
		return errors.Wrap(err, errors.ErrOutputWrite, "failed to write output")
	}
	p.logger.Trace().
		Str("mode", req.Options.Mode.String()).
		Str("frame", req.Options.frame().String()).
		Msg("Displayed")
	return nil
}

// Print renders payload with opts and writes it
func (p *Printer) Print(payload interface{}, opts ...Option) error {
	return p.Display(p.Request(payload, opts...))
}

// Sprint returns what Print would write, without the trailing newline
func (p *Printer) Sprint(payload interface{}, opts ...Option) (string, error) {
	return p.Render(p.Request(payload, opts...))
}

// Println prints its arguments the way fmt.Println would hand them over: a
// single argument is rendered as is, several are joined with the configured
// separator. No arguments print an empty line.
func (p *Printer) Println(args ...interface{}) error {
	return p.printArgs(nil, args)
}

func (p *Printer) printArgs(opts []Option, args []interface{}) error {
	if len(args) == 0 {
		p.mu.Lock()
		defer p.mu.Unlock()
		if _, err := io.WriteString(p.w, "\n"); err != nil {
			return errors.Wrap(err, errors.ErrOutputWrite, "failed to write output")
		}
		return nil
	}

	req := p.Request(nil, opts...)
	if len(args) == 1 {
		req.Payload = args[0]
	} else {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = fmt.Sprint(a)
		}
		req.Payload = strings.Join(parts, req.Options.Separator)
	}
	return p.Display(req)
}

func text(payload interface{}) string {
	switch v := payload.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(payload)
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}

var (
	defaultMu      sync.Mutex
	defaultPrinter *Printer
)

// Default returns the package-level printer, writing to os.Stdout with the
// configuration from config.Load. It is created on first use.
func Default() *Printer {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultPrinter == nil {
		defaultPrinter = newDefaultPrinter()
	}
	return defaultPrinter
}

func newDefaultPrinter() *Printer {
	logger := logging.GetLogger("beautify")
	cfg, err := config.Load(config.Options{})
	if err != nil {
		logger.Warn().Err(err).Msg("Using built-in defaults, configuration could not be loaded")
		cfg = config.Default()
	}
	p, err := NewPrinter(os.Stdout, WithConfig(cfg))
	if err != nil {
		logger.Warn().Err(err).Msg("Using built-in styles")
		p, _ = NewPrinter(os.Stdout, WithConfig(cfg), WithStyles(style.Default()))
	}
	return p
}

// SetDefault replaces the package-level printer. A nil printer resets it so
// the next use rebuilds it from the configuration.
func SetDefault(p *Printer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultPrinter = p
}

// Print renders payload with the default printer
func Print(payload interface{}, opts ...Option) error {
	return Default().Print(payload, opts...)
}

// Sprint renders payload with the default printer without writing it
func Sprint(payload interface{}, opts ...Option) (string, error) {
	return Default().Sprint(payload, opts...)
}

// Println prints args with the default printer
func Println(args ...interface{}) error {
	return Default().Println(args...)
}
