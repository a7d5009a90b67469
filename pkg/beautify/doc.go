// Package beautify pretty-prints values to a terminal.
//
// A Printer renders a payload in one of four modes and writes it to its
// writer:
//
//   - Plain: a structured rendering of any Go value
//   - Markdown: the payload is rendered as Markdown
//   - Code: the payload is syntax highlighted
//   - Table: table-shaped payloads become a grid
//
// The body can be framed by a bordered panel or a title rule. Defaults for
// every option come from the config package, so
//
//	beautify.Print(map[string]int{"a": 1, "b": 2}, beautify.WithTitle("Result"))
//
// renders the map inside a panel titled "Result".
//
// Severity helpers (Debug, Info, Success, Warning, Error, JSON) apply the
// presets configured under [levels.*]. A Binding holds a swappable print
// function; Activate and With substitute the printer for the lifetime of a
// scope and always restore the previous function.
package beautify
