// Package input decodes files and standard input into values the printer
// can render: JSON, YAML, TOML and XML documents become maps and slices,
// anything else is kept as text.
package input

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/logging"
	"github.com/beevik/etree"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is an input encoding
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
	FormatText Format = "text"
)

// Formats lists the formats accepted by ParseFormat
var Formats = []Format{FormatAuto, FormatJSON, FormatYAML, FormatTOML, FormatXML, FormatText}

// ParseFormat parses a format name; "yml" is accepted for YAML
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FormatAuto, nil
	}
	if name == "yml" {
		return FormatYAML, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown input format %q", s).WithDetail("format", s)
}

// Detect guesses the format from the file name, then from the content.
// YAML is only recognized by extension since most text parses as YAML.
func Detect(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".xml":
		return FormatXML
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return FormatText
	case (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed):
		return FormatJSON
	case trimmed[0] == '<' && bytes.HasSuffix(trimmed, []byte(">")):
		return FormatXML
	}
	return FormatText
}

// Decode reads all of r and decodes it. With FormatAuto the format is
// detected from name and the content; the format used is returned.
func Decode(r io.Reader, name string, format Format) (interface{}, Format, error) {
	logger := logging.GetLogger("input")

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, format, errors.Wrap(err, errors.ErrInputDecode, "failed to read input").WithDetail("name", name)
	}
	if format == "" || format == FormatAuto {
		format = Detect(name, data)
	}
	logger.Debug().Str("name", name).Str("format", string(format)).Int("bytes", len(data)).Msg("Decoding input")

	v, err := DecodeBytes(data, format)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.WithDetail("name", name)
		}
		return nil, format, err
	}
	return v, format, nil
}

// DecodeBytes decodes data in the given format
func DecodeBytes(data []byte, format Format) (interface{}, error) {
	var (
		v   interface{}
		err error
	)
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&v)
	case FormatYAML:
		err = yaml.Unmarshal(data, &v)
	case FormatTOML:
		var doc map[string]interface{}
		err = toml.Unmarshal(data, &doc)
		v = doc
	case FormatXML:
		v, err = decodeXML(data)
	case FormatText, FormatAuto, "":
		return string(data), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown input format %q", format).WithDetail("format", string(format))
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInputDecode, "invalid %s input", format).WithDetail("format", string(format))
	}
	return v, nil
}

// decodeXML converts a document into nested maps: attributes become "@name"
// keys, repeated child elements become lists and mixed text is kept under
// "#text". A leaf element becomes its text.
func decodeXML(data []byte) (interface{}, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrInputDecode, "document has no root element")
	}
	return map[string]interface{}{root.FullTag(): elementValue(root)}, nil
}

func elementValue(el *etree.Element) interface{} {
	children := el.ChildElements()
	text := strings.TrimSpace(el.Text())
	if len(el.Attr) == 0 && len(children) == 0 {
		return text
	}

	m := make(map[string]interface{}, len(el.Attr)+len(children))
	for _, a := range el.Attr {
		m["@"+a.FullKey()] = a.Value
	}
	for _, child := range children {
		tag := child.FullTag()
		value := elementValue(child)
		switch existing := m[tag].(type) {
		case nil:
			m[tag] = value
		case []interface{}:
			m[tag] = append(existing, value)
		default:
			m[tag] = []interface{}{existing, value}
		}
	}
	if text != "" {
		m["#text"] = text
	}
	return m
}

// Language returns the lexer name matching a file name, or "" when none
// does
func Language(name string) string {
	if name == "" {
		return ""
	}
	lexer := lexers.Match(filepath.Base(name))
	if lexer == nil {
		return ""
	}
	return strings.ToLower(lexer.Config().Name)
}
