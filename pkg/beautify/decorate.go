package beautify

import (
	"reflect"
	"runtime"
	"strings"
)

// Decorate wraps fn so that its result is printed before being returned.
// The title defaults to "Output from <function name>". When fn fails
// nothing is printed and its error is returned; a print failure is
// returned alongside the result.
func Decorate[T any](p *Printer, fn func() (T, error), opts ...Option) func() (T, error) {
	title := "Output from " + funcName(fn)
	opts = append([]Option{WithTitle(title)}, opts...)

	return func() (T, error) {
		result, err := fn()
		if err != nil {
			return result, err
		}
		printer := p
		if printer == nil {
			printer = Default()
		}
		return result, printer.Print(result, opts...)
	}
}

// funcName returns the unqualified name of fn, e.g. "loadUsers" or
// "(*Store).Load"
func funcName(fn interface{}) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "function"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
