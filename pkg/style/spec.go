package style

import (
	"fmt"
	"strings"
)

// ParseSpec parses a compact style description such as "bold cyan",
// "italic #ff8800" or "white on red". A registered style name is accepted
// as well and returns that style's definition.
func (r *Registry) ParseSpec(spec string) (StyleDef, error) {
	spec = strings.TrimSpace(spec)
	if def, ok := r.styles[spec]; ok {
		return def, nil
	}

	var def StyleDef
	words := strings.Fields(strings.ToLower(spec))
	for i := 0; i < len(words); i++ {
		word := words[i]
		switch word {
		case "bold", "b":
			def.Bold = true
		case "italic", "i":
			def.Italic = true
		case "underline", "u":
			def.Underline = true
		case "dim", "faint":
			def.Faint = true
		case "reverse":
			def.Reverse = true
		case "default", "none":
		case "on":
			if i+1 >= len(words) {
				return StyleDef{}, fmt.Errorf("style %q: missing color after \"on\"", spec)
			}
			i++
			if !r.knownColor(words[i]) {
				return StyleDef{}, fmt.Errorf("style %q: unknown color %q", spec, words[i])
			}
			def.Background = words[i]
		default:
			if !r.knownColor(word) {
				return StyleDef{}, fmt.Errorf("style %q: unknown attribute or color %q", spec, word)
			}
			def.Foreground = word
		}
	}
	return def, nil
}
