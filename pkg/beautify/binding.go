package beautify

import (
	"fmt"
	"sync"
)

// PrintFunc is a print-like function
type PrintFunc func(args ...interface{}) error

// Binding holds the print function callers go through. Activating a printer
// on a binding swaps the function and hands back an Activation that puts
// the previous one back.
//
// Swapping is safe from any goroutine, but activations from several
// goroutines at once restore in an unspecified order. Nest activations and
// restore them in reverse order.
type Binding struct {
	mu      sync.Mutex
	fn      PrintFunc
	initial PrintFunc
}

// NewBinding creates a binding around fn. A nil fn prints with fmt.Println.
func NewBinding(fn PrintFunc) *Binding {
	if fn == nil {
		fn = stdPrint
	}
	return &Binding{fn: fn, initial: fn}
}

func stdPrint(args ...interface{}) error {
	_, err := fmt.Println(args...)
	return err
}

// Current returns the function currently bound
func (b *Binding) Current() PrintFunc {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fn
}

// Print calls the bound function
func (b *Binding) Print(args ...interface{}) error {
	return b.Current()(args...)
}

// Reset binds the function the binding was created with
func (b *Binding) Reset() {
	b.swap(b.initial)
}

func (b *Binding) swap(fn PrintFunc) PrintFunc {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev := b.fn
	b.fn = fn
	return prev
}

// Activate binds p, printing every call with defaults applied, until the
// returned Activation is restored. A nil printer uses the default one.
func (b *Binding) Activate(p *Printer, defaults ...Option) *Activation {
	if p == nil {
		p = Default()
	}
	fn := func(args ...interface{}) error {
		return p.printArgs(defaults, args)
	}
	return &Activation{binding: b, saved: b.swap(fn)}
}

// Activation is a live substitution of a binding's print function
type Activation struct {
	binding *Binding
	saved   PrintFunc
	once    sync.Once
}

// Restore puts back the function bound before activation. Calls after the
// first do nothing.
func (a *Activation) Restore() {
	a.once.Do(func() {
		a.binding.swap(a.saved)
	})
}

// With activates p on b for the duration of fn. The previous function is
// restored however fn exits, including by panic.
func With[T any](b *Binding, p *Printer, fn func() (T, error), defaults ...Option) (T, error) {
	act := b.Activate(p, defaults...)
	defer act.Restore()
	return fn()
}

var defaultBinding = NewBinding(nil)

// DefaultBinding returns the package-level binding, initially bound to
// fmt.Println
func DefaultBinding() *Binding {
	return defaultBinding
}

// Enable routes the default binding through the default printer until the
// returned Activation is restored or Disable is called
func Enable(defaults ...Option) *Activation {
	return defaultBinding.Activate(Default(), defaults...)
}

// Disable binds fmt.Println on the default binding again
func Disable() {
	defaultBinding.Reset()
}
