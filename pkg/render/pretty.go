package render

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PrettyOptions controls the generic structured value printer
type PrettyOptions struct {
	// ExpandAll puts every container entry on its own line, even when the
	// container would fit on one line.
	ExpandAll bool
	// IndentGuides draws a vertical guide at each nesting level.
	IndentGuides bool
}

const (
	indentWidth    = 4
	maxPrettyDepth = 32
)

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// Pretty renders v as an indented, syntax-colored structure. A top-level
// string is returned verbatim.
func (r *Renderer) Pretty(v interface{}, opts PrettyOptions) string {
	if s, ok := v.(string); ok {
		return s
	}

	p := &prettyPrinter{
		opts:    opts,
		width:   r.term.Width,
		seen:    make(map[seenKey]bool),
		key:     r.style("pretty.key"),
		str:     r.style("pretty.string"),
		number:  r.style("pretty.number"),
		boolean: r.style("pretty.bool"),
		null:    r.style("pretty.nil"),
		typ:     r.style("pretty.type"),
		bracket: r.style("pretty.bracket"),
		guide:   r.style("pretty.guide"),
	}
	return p.format(reflect.ValueOf(v), 0)
}

type prettyPrinter struct {
	opts  PrettyOptions
	width int
	seen  map[seenKey]bool

	key, str, number, boolean, null, typ, bracket, guide lipgloss.Style
}

// seenKey identifies a reference on the current path. The type is part of
// the key because a struct and its first field share an address.
type seenKey struct {
	ptr uintptr
	typ reflect.Type
}

// entry is one rendered slot of a container
type entry struct {
	label string
	value reflect.Value
}

// container describes a value with children
type container struct {
	open, close string
	entries     []entry
}

func (p *prettyPrinter) format(v reflect.Value, depth int) string {
	if !p.opts.ExpandAll {
		if line, ok := p.inline(v, depth, p.width-depth*indentWidth); ok {
			return line
		}
	}

	c, text, leave, ok := p.resolve(v, depth)
	if !ok {
		return text
	}
	defer leave()
	if len(c.entries) == 0 {
		return c.open + c.close
	}
	return p.expanded(c, depth)
}

// resolve follows interfaces and pointers down to a container. Leaves, nils
// and cycles come back as finished text. The caller must call leave once it
// is done with the container's entries.
func (p *prettyPrinter) resolve(v reflect.Value, depth int) (c container, text string, leave func(), ok bool) {
	var marks []seenKey
	leave = func() {
		for _, k := range marks {
			delete(p.seen, k)
		}
	}
	done := func(s string) (container, string, func(), bool) {
		leave()
		return container{}, s, func() {}, false
	}

	for {
		v = p.unwrap(v)
		if !v.IsValid() {
			return done(p.null.Render("nil"))
		}
		if depth > maxPrettyDepth {
			return done(p.typ.Render("…"))
		}

		switch v.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Slice:
			if v.IsNil() {
				return done(p.null.Render("nil"))
			}
			if isTextual(v) {
				return done(p.leaf(v))
			}
			if v.Kind() == reflect.Slice && v.Len() == 0 {
				break
			}
			key := seenKey{ptr: v.Pointer(), typ: v.Type()}
			if p.seen[key] {
				return done(p.typ.Render(fmt.Sprintf("<cycle %s>", v.Type())))
			}
			p.seen[key] = true
			marks = append(marks, key)
			if v.Kind() == reflect.Ptr {
				v = v.Elem()
				continue
			}
		}
		break
	}

	c, ok = p.container(v)
	if !ok {
		return done(p.leaf(v))
	}
	return c, "", leave, true
}

// unwrap strips interfaces so the dynamic value is formatted
func (p *prettyPrinter) unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// inline renders v on a single line. It gives up as soon as the line grows
// wider than budget, so a failed attempt only costs the prefix it visited.
func (p *prettyPrinter) inline(v reflect.Value, depth, budget int) (string, bool) {
	c, text, leave, ok := p.resolve(v, depth)
	if !ok {
		return text, !strings.Contains(text, "\n") && lipgloss.Width(text) <= budget
	}
	defer leave()

	used := lipgloss.Width(c.open) + lipgloss.Width(c.close)
	if used > budget {
		return "", false
	}
	var b strings.Builder
	b.WriteString(c.open)
	for i, e := range c.entries {
		if i > 0 {
			b.WriteString(", ")
			used += 2
		}
		b.WriteString(e.label)
		used += lipgloss.Width(e.label)
		if used > budget {
			return "", false
		}
		child, ok := p.inline(e.value, depth+1, budget-used)
		if !ok {
			return "", false
		}
		b.WriteString(child)
		used += lipgloss.Width(child)
	}
	b.WriteString(c.close)
	return b.String(), true
}

func (p *prettyPrinter) expanded(c container, depth int) string {
	var b strings.Builder
	b.WriteString(c.open)
	b.WriteString("\n")
	for i, e := range c.entries {
		b.WriteString(p.indent(depth + 1))
		b.WriteString(e.label)
		b.WriteString(p.format(e.value, depth+1))
		if i < len(c.entries)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(p.indent(depth))
	b.WriteString(c.close)
	return b.String()
}

func (p *prettyPrinter) indent(level int) string {
	if !p.opts.IndentGuides {
		return strings.Repeat(" ", level*indentWidth)
	}
	return strings.Repeat(p.guide.Render("│")+strings.Repeat(" ", indentWidth-1), level)
}

// container returns the children of maps, slices, arrays and structs
func (p *prettyPrinter) container(v reflect.Value) (container, bool) {
	if isTextual(v) {
		return container{}, false
	}

	switch v.Kind() {
	case reflect.Map:
		keys := v.MapKeys()
		labels := make([]string, len(keys))
		order := make([]int, len(keys))
		for i, k := range keys {
			labels[i] = p.mapKey(k)
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return sortKey(keys[order[a]]) < sortKey(keys[order[b]])
		})
		c := container{open: p.bracket.Render("{"), close: p.bracket.Render("}")}
		for _, i := range order {
			c.entries = append(c.entries, entry{label: labels[i] + ": ", value: v.MapIndex(keys[i])})
		}
		return c, true

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return container{}, false
		}
		c := container{open: p.bracket.Render("["), close: p.bracket.Render("]")}
		for i := 0; i < v.Len(); i++ {
			c.entries = append(c.entries, entry{value: v.Index(i)})
		}
		return c, true

	case reflect.Struct:
		t := v.Type()
		name := t.Name()
		if name == "" {
			name = "struct"
		}
		c := container{open: p.typ.Render(name) + p.bracket.Render("{"), close: p.bracket.Render("}")}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			c.entries = append(c.entries, entry{label: p.key.Render(f.Name) + ": ", value: v.Field(i)})
		}
		return c, true
	}
	return container{}, false
}

// isTextual reports values that print through String or Error
func isTextual(v reflect.Value) bool {
	if !v.CanInterface() {
		return false
	}
	t := v.Type()
	return t.Implements(stringerType) || t.Implements(errorType)
}

func (p *prettyPrinter) mapKey(k reflect.Value) string {
	k = p.unwrap(k)
	if k.IsValid() && k.Kind() == reflect.String {
		return p.key.Render(strconv.Quote(k.String()))
	}
	return p.leaf(k)
}

func sortKey(k reflect.Value) string {
	if k.CanInterface() {
		return fmt.Sprint(k.Interface())
	}
	return k.String()
}

func (p *prettyPrinter) leaf(v reflect.Value) string {
	if !v.IsValid() {
		return p.null.Render("nil")
	}

	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case error:
			return x.Error()
		case fmt.Stringer:
			return x.String()
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return p.boolean.Render(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return p.number.Render(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return p.number.Render(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32:
		return p.number.Render(strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case reflect.Float64:
		return p.number.Render(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64, reflect.Complex128:
		return p.number.Render(fmt.Sprint(v.Complex()))
	case reflect.String:
		return p.str.Render(strconv.Quote(v.String()))
	case reflect.Slice:
		if v.IsNil() {
			return p.null.Render("nil")
		}
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if v.IsNil() {
			return p.null.Render("nil")
		}
	}
	return p.typ.Render(fmt.Sprintf("<%s>", v.Type()))
}
