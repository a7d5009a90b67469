package beautify_test

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/beautify/pkg/beautify"
	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a print function that keeps what it was given
type recorder struct {
	lines []string
}

func (r *recorder) print(args ...interface{}) error {
	r.lines = append(r.lines, fmt.Sprint(args...))
	return nil
}

func TestWithRestoresBinding(t *testing.T) {
	tests := []struct {
		name string
		run  func(b *beautify.Binding, p *beautify.Printer)
	}{
		{
			name: "normal return",
			run: func(b *beautify.Binding, p *beautify.Printer) {
				n, err := beautify.With(b, p, func() (int, error) {
					return 7, b.Print("inside")
				})
				assert.NoError(t, err)
				assert.Equal(t, 7, n)
			},
		},
		{
			name: "error return",
			run: func(b *beautify.Binding, p *beautify.Printer) {
				_, err := beautify.With(b, p, func() (string, error) {
					require.NoError(t, b.Print("inside"))
					return "", errors.New(errors.ErrInternal, "failed")
				})
				assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
			},
		},
		{
			name: "panic",
			run: func(b *beautify.Binding, p *beautify.Printer) {
				assert.PanicsWithValue(t, "boom", func() {
					_, _ = beautify.With(b, p, func() (bool, error) {
						require.NoError(t, b.Print("inside"))
						panic("boom")
					})
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			b := beautify.NewBinding(rec.print)
			p, buf := newTestPrinter(t)

			tt.run(b, p)

			assert.Equal(t, "inside\n", buf.String(), "the printer served calls inside the scope")
			require.NoError(t, b.Print("after"))
			assert.Equal(t, []string{"after"}, rec.lines, "the saved function is bound again")
		})
	}
}

func TestActivationRestoreIsIdempotent(t *testing.T) {
	rec := &recorder{}
	b := beautify.NewBinding(rec.print)
	p1, buf1 := newTestPrinter(t)
	p2, buf2 := newTestPrinter(t)

	outer := b.Activate(p1)
	inner := b.Activate(p2)

	require.NoError(t, b.Print("two"))
	inner.Restore()
	require.NoError(t, b.Print("one"))
	inner.Restore()
	require.NoError(t, b.Print("one again"))
	outer.Restore()
	outer.Restore()
	require.NoError(t, b.Print("zero"))

	assert.Equal(t, "two\n", buf2.String())
	assert.Equal(t, "one\none again\n", buf1.String())
	assert.Equal(t, []string{"zero"}, rec.lines)
}

func TestActivateAppliesDefaults(t *testing.T) {
	b := beautify.NewBinding(nil)
	p, buf := newTestPrinter(t)

	act := b.Activate(p,
		beautify.WithSeparator(", "),
		beautify.WithTitle("Log"),
		beautify.WithRule(),
		beautify.WithTitleWidth(9),
	)
	defer act.Restore()

	require.NoError(t, b.Print("a", "b"))
	assert.Equal(t, "── Log ──\na, b\n", buf.String())
}

func TestBindingReset(t *testing.T) {
	rec := &recorder{}
	b := beautify.NewBinding(rec.print)
	p, buf := newTestPrinter(t)

	b.Activate(p)
	b.Activate(p)
	b.Reset()

	require.NoError(t, b.Print("x"))
	assert.Equal(t, []string{"x"}, rec.lines)
	assert.Empty(t, buf.String())
}

func TestEnableDisable(t *testing.T) {
	p, buf := newTestPrinter(t)
	beautify.SetDefault(p)
	t.Cleanup(func() {
		beautify.Disable()
		beautify.SetDefault(nil)
	})

	act := beautify.Enable()
	require.NoError(t, beautify.DefaultBinding().Print(map[string]int{"n": 1}, "ignored join"))
	act.Restore()

	assert.Contains(t, buf.String(), "map[n:1] ignored join")

	beautify.Enable(beautify.WithTitle("T"))
	require.NoError(t, beautify.DefaultBinding().Print("boxed"))
	assert.Contains(t, buf.String(), " T ")

	beautify.Disable()
	before := buf.Len()
	require.NoError(t, beautify.DefaultBinding().Print("back on stdout"))
	assert.Equal(t, before, buf.Len())
}
