package beautify

import "fmt"

// ModeKind identifies how a payload is rendered
type ModeKind int

const (
	ModePlain ModeKind = iota
	ModeMarkdown
	ModeCode
	ModeTable
)

func (k ModeKind) String() string {
	switch k {
	case ModeMarkdown:
		return "markdown"
	case ModeCode:
		return "code"
	case ModeTable:
		return "table"
	default:
		return "plain"
	}
}

// Mode is the resolved render mode. Language is only meaningful for code.
type Mode struct {
	Kind     ModeKind
	Language string
}

func Plain() Mode    { return Mode{Kind: ModePlain} }
func Markdown() Mode { return Mode{Kind: ModeMarkdown} }
func Table() Mode    { return Mode{Kind: ModeTable} }

// Code highlights the payload as language. An empty language is guessed
// from the source.
func Code(language string) Mode {
	return Mode{Kind: ModeCode, Language: language}
}

func (m Mode) String() string {
	if m.Kind == ModeCode && m.Language != "" {
		return fmt.Sprintf("code(%s)", m.Language)
	}
	return m.Kind.String()
}

// Flags are the independent mode switches a caller may set
type Flags struct {
	Markdown bool
	Code     bool
	Table    bool
	Language string
}

// ResolveMode picks a single mode from flags. When several are set,
// markdown wins over code, and code wins over table.
func ResolveMode(f Flags) Mode {
	switch {
	case f.Markdown:
		return Markdown()
	case f.Code:
		return Code(f.Language)
	case f.Table:
		return Table()
	default:
		return Plain()
	}
}
