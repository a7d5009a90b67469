package render

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableOptions configures tabular grids
type TableOptions struct {
	// HeaderStyle is a style spec or registered style name for the header.
	HeaderStyle string
	// Border is one of rounded, normal, thick, double, hidden, ascii, markdown.
	Border string
}

// ValueColumn heads the single column of a list of scalars
const ValueColumn = "Value"

// Table renders table-shaped data as a grid:
//   - a map renders its keys as columns and its values as one row
//   - a slice of maps needs every record to have the first record's keys
//   - a slice of structs uses the exported field names as columns
//   - a slice of slices uses the first row as header
//   - a slice of scalars renders a single Value column
//
// Any other payload, or records of differing shape, fail with FORMAT_MISMATCH.
func (r *Renderer) Table(v interface{}, opts TableOptions) (string, error) {
	defer logging.LogOperationStart(r.logger, "table")()

	headers, rows, err := Tabulate(v)
	if err != nil {
		return "", err
	}

	headerStyle, err := r.specStyle(opts.HeaderStyle)
	if err != nil {
		return "", err
	}
	headerStyle = headerStyle.Padding(0, 1)
	cellStyle := r.lg.NewStyle().Padding(0, 1)

	t := table.New().
		Border(borderFor(opts.Border)).
		BorderStyle(r.style("table.border")).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	r.logger.Debug().Int("columns", len(headers)).Int("rows", len(rows)).Msg("Rendered table")
	return t.Render(), nil
}

func borderFor(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	case "markdown":
		return lipgloss.MarkdownBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// Tabulate converts table-shaped data into a header and string rows
func Tabulate(v interface{}) ([]string, [][]string, error) {
	rv := deref(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, nil, mismatch("nil payload cannot be rendered as a table")
	}

	switch rv.Kind() {
	case reflect.Map:
		keys := sortedKeys(rv)
		headers := make([]string, len(keys))
		row := make([]string, len(keys))
		for i, k := range keys {
			headers[i] = cellText(k)
			row[i] = cellText(rv.MapIndex(k))
		}
		return headers, [][]string{row}, nil

	case reflect.Struct:
		if isTextual(rv) {
			break
		}
		headers, row := structRow(rv)
		return headers, [][]string{row}, nil

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, nil, mismatch("byte slices cannot be rendered as a table")
		}
		return tabulateList(rv)
	}

	return nil, nil, mismatch(fmt.Sprintf("%s cannot be rendered as a table", rv.Type())).
		WithDetail("type", rv.Type().String())
}

func tabulateList(list reflect.Value) ([]string, [][]string, error) {
	if list.Len() == 0 {
		return []string{ValueColumn}, nil, nil
	}

	first := deref(list.Index(0))
	shape := shapeOf(first)
	for i := 1; i < list.Len(); i++ {
		if got := shapeOf(deref(list.Index(i))); got != shape {
			return nil, nil, mismatch(fmt.Sprintf("record %d is a %s, record 0 is a %s", i, got, shape)).
				WithDetail("record", i)
		}
	}

	switch shape {
	case shapeMap:
		return tabulateMaps(list)
	case shapeStruct:
		return tabulateStructs(list)
	case shapeList:
		return tabulateRows(list)
	default:
		rows := make([][]string, list.Len())
		for i := range rows {
			rows[i] = []string{cellText(list.Index(i))}
		}
		return []string{ValueColumn}, rows, nil
	}
}

func tabulateMaps(list reflect.Value) ([]string, [][]string, error) {
	first := deref(list.Index(0))
	keys := sortedKeys(first)
	headers := make([]string, len(keys))
	for i, k := range keys {
		headers[i] = cellText(k)
	}

	rows := make([][]string, list.Len())
	for i := range rows {
		rec := deref(list.Index(i))
		cells := make(map[string]string, rec.Len())
		for _, k := range rec.MapKeys() {
			cells[cellText(k)] = cellText(rec.MapIndex(k))
		}
		if missing, extra := diffKeys(headers, cells); len(missing) > 0 || len(extra) > 0 {
			return nil, nil, mismatch(fmt.Sprintf("record %d has fields that differ from record 0", i)).
				WithDetail("record", i).
				WithDetail("missing", missing).
				WithDetail("extra", extra)
		}
		row := make([]string, len(headers))
		for j, h := range headers {
			row[j] = cells[h]
		}
		rows[i] = row
	}
	return headers, rows, nil
}

func tabulateStructs(list reflect.Value) ([]string, [][]string, error) {
	typ := deref(list.Index(0)).Type()
	var headers []string
	rows := make([][]string, list.Len())
	for i := range rows {
		rec := deref(list.Index(i))
		if rec.Type() != typ {
			return nil, nil, mismatch(fmt.Sprintf("record %d is a %s, record 0 is a %s", i, rec.Type(), typ)).
				WithDetail("record", i)
		}
		headers, rows[i] = structRow(rec)
	}
	return headers, rows, nil
}

func tabulateRows(list reflect.Value) ([]string, [][]string, error) {
	head := deref(list.Index(0))
	headers := make([]string, head.Len())
	for i := range headers {
		headers[i] = cellText(head.Index(i))
	}

	rows := make([][]string, 0, list.Len()-1)
	for i := 1; i < list.Len(); i++ {
		rec := deref(list.Index(i))
		if rec.Len() != len(headers) {
			return nil, nil, mismatch(fmt.Sprintf("row %d has %d cells, header has %d", i, rec.Len(), len(headers))).
				WithDetail("record", i)
		}
		row := make([]string, rec.Len())
		for j := range row {
			row[j] = cellText(rec.Index(j))
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

func structRow(v reflect.Value) ([]string, []string) {
	t := v.Type()
	var headers, row []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		headers = append(headers, f.Name)
		row = append(row, cellText(v.Field(i)))
	}
	return headers, row
}

type shape string

const (
	shapeMap    shape = "mapping"
	shapeStruct shape = "struct"
	shapeList   shape = "sequence"
	shapeScalar shape = "scalar"
)

func shapeOf(v reflect.Value) shape {
	if !v.IsValid() {
		return shapeScalar
	}
	switch v.Kind() {
	case reflect.Map:
		return shapeMap
	case reflect.Struct:
		if isTextual(v) {
			return shapeScalar
		}
		return shapeStruct
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return shapeScalar
		}
		return shapeList
	default:
		return shapeScalar
	}
}

func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		return cellText(keys[i]) < cellText(keys[j])
	})
	return keys
}

func cellText(v reflect.Value) string {
	v = deref(v)
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	if v.CanInterface() {
		return fmt.Sprint(v.Interface())
	}
	return v.String()
}

func diffKeys(headers []string, cells map[string]string) (missing, extra []string) {
	want := make(map[string]bool, len(headers))
	for _, h := range headers {
		want[h] = true
		if _, ok := cells[h]; !ok {
			missing = append(missing, h)
		}
	}
	for k := range cells {
		if !want[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return missing, extra
}

func mismatch(msg string) *errors.Error {
	return errors.New(errors.ErrFormatMismatch, strings.TrimSpace(msg)).WithDetail("mode", "table")
}
