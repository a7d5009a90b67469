package beautify_test

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/arthur-debert/beautify/pkg/beautify"
	"github.com/arthur-debert/beautify/pkg/config"
	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWidth = 60

// newTestPrinter writes plain text into the returned buffer
func newTestPrinter(t *testing.T) (*beautify.Printer, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	p, err := beautify.NewPrinter(buf,
		beautify.WithColorProfile(termenv.Ascii),
		beautify.WithWidth(testWidth),
	)
	require.NoError(t, err)
	return p, buf
}

type point struct {
	X, Y int
}

func TestPrintPlainPayloads(t *testing.T) {
	payloads := map[string]interface{}{
		"nil":    nil,
		"int":    42,
		"string": "hello",
		"map":    map[string]int{"a": 1},
		"slice":  []string{"x", "y"},
		"empty":  []int{},
		"struct": point{X: 1, Y: 2},
		"ptr":    &point{X: 3},
		"nested": map[string]interface{}{"list": []interface{}{1, "two", nil}},
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			p, buf := newTestPrinter(t)
			require.NoError(t, p.Print(payload))
			assert.NotEmpty(t, strings.TrimSpace(buf.String()))
			assert.True(t, strings.HasSuffix(buf.String(), "\n"))
		})
	}
}

func TestPrintResultPanel(t *testing.T) {
	p, buf := newTestPrinter(t)

	require.NoError(t, p.Print(map[string]int{"a": 1, "b": 2}, beautify.WithTitle("Result")))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "╭"))
	assert.Contains(t, lines[0], " Result ")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "╰"))
	assert.Contains(t, buf.String(), `"a": 1`)
	assert.Contains(t, buf.String(), `"b": 2`)
	for _, line := range lines {
		assert.Equal(t, testWidth, lipgloss.Width(line), "panels expand to the full width")
	}
}

func TestPrintMarkdown(t *testing.T) {
	p, buf := newTestPrinter(t)
	src := "# Hi\n- x"

	require.NoError(t, p.Print(src, beautify.WithMarkdown()))
	out := buf.String()
	assert.Contains(t, out, "Hi")
	assert.Contains(t, out, "• x")
	assert.NotContains(t, out, "# Hi")

	plain, err := p.Sprint(src)
	require.NoError(t, err)
	assert.NotEqual(t, plain+"\n", out)
}

func TestPrintTable(t *testing.T) {
	p, buf := newTestPrinter(t)

	records := []map[string]int{{"a": 1}, {"a": 2}}
	require.NoError(t, p.Print(records, beautify.WithTable()))

	want := strings.Join([]string{
		"╭───╮",
		"│ a │",
		"├───┤",
		"│ 1 │",
		"│ 2 │",
		"╰───╯",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintTableRowsMatchRecords(t *testing.T) {
	tests := []struct {
		name    string
		records interface{}
		rows    int
	}{
		{"maps", []map[string]interface{}{{"name": "a", "n": 1}, {"name": "b", "n": 2}, {"name": "c", "n": 3}}, 3},
		{"structs", []point{{1, 2}, {3, 4}}, 2},
		{"scalars", []string{"x"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrinter(t)
			out, err := p.Sprint(tt.records, beautify.WithTable(), beautify.WithTableBorder("ascii"))
			require.NoError(t, err)

			lines := strings.Split(out, "\n")
			// top border, header, header separator, rows, bottom border
			assert.Len(t, lines, tt.rows+4)
		})
	}
}

func TestPrintFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		opts    []beautify.Option
		code    errors.ErrorCode
	}{
		{
			name:    "non-uniform records",
			payload: []map[string]int{{"a": 1}, {"b": 2}},
			opts:    []beautify.Option{beautify.WithTable(), beautify.WithTitle("Users")},
			code:    errors.ErrFormatMismatch,
		},
		{
			name:    "table of a scalar",
			payload: 12,
			opts:    []beautify.Option{beautify.WithTable()},
			code:    errors.ErrFormatMismatch,
		},
		{
			name:    "unknown language",
			payload: "x := 1",
			opts:    []beautify.Option{beautify.WithCode("klingon-script"), beautify.WithPanel()},
			code:    errors.ErrRenderingBackend,
		},
		{
			name:    "unknown markdown style",
			payload: "# x",
			opts:    []beautify.Option{beautify.WithMarkdown(), beautify.WithMarkdownStyle("no-such-style")},
			code:    errors.ErrRenderingBackend,
		},
		{
			name:    "bad panel style",
			payload: 1,
			opts:    []beautify.Option{beautify.WithPanel(), beautify.WithPanelStyle("sparkly")},
			code:    errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, buf := newTestPrinter(t)
			err := p.Print(tt.payload, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Empty(t, buf.String())
		})
	}
}

func TestPrintModePrecedence(t *testing.T) {
	p, _ := newTestPrinter(t)

	out, err := p.Sprint("# Hi", beautify.WithTable(), beautify.WithCode("go"), beautify.WithMarkdown())
	require.NoError(t, err)
	assert.NotContains(t, out, "# Hi", "markdown wins")

	out, err = p.Sprint("plain words", beautify.WithTable(), beautify.WithCode("text"))
	require.NoError(t, err, "code wins over table, so a string is accepted")
	assert.Equal(t, "plain words", out)

	out, err = p.Sprint([]int{7}, beautify.WithMarkdown(), beautify.WithMode(beautify.Table()))
	require.NoError(t, err)
	assert.Contains(t, out, "│ Value │", "an explicit mode overrides the flags")
}

func TestPrintCode(t *testing.T) {
	p, _ := newTestPrinter(t)
	src := "func main() {\n\tprintln(1)\n}"

	out, err := p.Sprint(src, beautify.WithCode("go"))
	require.NoError(t, err)
	assert.Equal(t, src, out)

	out, err = p.Sprint(src, beautify.WithCode("go"), beautify.WithLineNumbers(true))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1 │ func main() {"))
}

func TestPrintFrames(t *testing.T) {
	p, _ := newTestPrinter(t)

	t.Run("rule", func(t *testing.T) {
		out, err := p.Sprint("x", beautify.WithTitle("T"), beautify.WithRule(), beautify.WithTitleWidth(11))
		require.NoError(t, err)
		assert.Equal(t, "──── T ────\nx", out)
	})

	t.Run("rule aligned left", func(t *testing.T) {
		out, err := p.Sprint("x", beautify.WithTitle("T"), beautify.WithRule(),
			beautify.WithTitleWidth(6), beautify.WithTitleAlign("left"))
		require.NoError(t, err)
		assert.Equal(t, "T ────\nx", out)
	})

	t.Run("rule with title style", func(t *testing.T) {
		colored, err := beautify.NewPrinter(&bytes.Buffer{},
			beautify.WithColorProfile(termenv.ANSI256),
			beautify.WithWidth(testWidth),
		)
		require.NoError(t, err)

		out, err := colored.Sprint("x", beautify.WithTitle("T"), beautify.WithRule(),
			beautify.WithTitleWidth(11), beautify.WithTitleStyle("bold red"))
		require.NoError(t, err)
		rule, body, _ := strings.Cut(out, "\n")
		assert.Contains(t, rule, "\x1b[")
		assert.Contains(t, rule, "──── T ────")
		assert.Equal(t, "x", body)
	})

	t.Run("invalid title style", func(t *testing.T) {
		p, buf := newTestPrinter(t)
		err := p.Print("x", beautify.WithTitle("T"), beautify.WithRule(), beautify.WithTitleStyle("bold nocolor"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Empty(t, buf.String())
	})

	t.Run("rule without title", func(t *testing.T) {
		out, err := p.Sprint("x", beautify.WithRule())
		require.NoError(t, err)
		assert.Equal(t, "x", out)
	})

	t.Run("none ignores the title", func(t *testing.T) {
		out, err := p.Sprint("x", beautify.WithTitle("T"), beautify.WithFrame(beautify.FrameNone))
		require.NoError(t, err)
		assert.Equal(t, "x", out)
	})

	t.Run("panel without title", func(t *testing.T) {
		out, err := p.Sprint("x", beautify.WithPanel(), beautify.WithPanelExpand(false))
		require.NoError(t, err)
		assert.Equal(t, "╭───╮\n│ x │\n╰───╯", out)
	})

	t.Run("auto without title", func(t *testing.T) {
		out, err := p.Sprint("x")
		require.NoError(t, err)
		assert.Equal(t, "x", out)
	})
}

func TestPrintConfiguredFrame(t *testing.T) {
	cfg, err := config.Load(config.Options{
		SkipUser:  true,
		SkipEnv:   true,
		Overrides: map[string]interface{}{"frame": "rule", "title.width": 7},
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	p, err := beautify.NewPrinter(buf, beautify.WithConfig(cfg), beautify.WithColorProfile(termenv.Ascii))
	require.NoError(t, err)

	require.NoError(t, p.Print("body", beautify.WithTitle("T")))
	assert.Equal(t, "── T ──\nbody\n", buf.String())
}

func TestPrintPrettyOptions(t *testing.T) {
	p, _ := newTestPrinter(t)
	payload := map[string]int{"a": 1, "b": 2}

	out, err := p.Sprint(payload, beautify.WithExpandAll(false))
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1, "b": 2}`, out)

	out, err = p.Sprint(payload, beautify.WithIndentGuides(false))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1,\n    \"b\": 2\n}", out)
}

func TestPrintln(t *testing.T) {
	t.Run("joins with the separator", func(t *testing.T) {
		p, buf := newTestPrinter(t)
		require.NoError(t, p.Println("total:", 3, true))
		assert.Equal(t, "total: 3 true\n", buf.String())
	})

	t.Run("single value keeps its structure", func(t *testing.T) {
		p, buf := newTestPrinter(t)
		require.NoError(t, p.Println([]int{1}))
		assert.Contains(t, buf.String(), "[")
	})

	t.Run("no values print an empty line", func(t *testing.T) {
		p, buf := newTestPrinter(t)
		require.NoError(t, p.Println())
		assert.Equal(t, "\n", buf.String())
	})
}

func TestSprintDoesNotWrite(t *testing.T) {
	p, buf := newTestPrinter(t)

	out, err := p.Sprint("hello", beautify.WithTitle("Greeting"))
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestPrintWriteError(t *testing.T) {
	p, err := beautify.NewPrinter(failingWriter{}, beautify.WithColorProfile(termenv.Ascii))
	require.NoError(t, err)

	err = p.Print("x")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutputWrite))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestNewPrinterStylesFile(t *testing.T) {
	cfg, err := config.Load(config.Options{
		SkipUser:  true,
		SkipEnv:   true,
		Overrides: map[string]interface{}{"styles": "/does/not/exist.yaml"},
	})
	require.NoError(t, err)

	_, err = beautify.NewPrinter(&bytes.Buffer{}, beautify.WithConfig(cfg))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestPrintConcurrentBlocksDoNotInterleave(t *testing.T) {
	p, buf := newTestPrinter(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Print([]int{1, 2, 3}, beautify.WithTitle("block"), beautify.WithPanelExpand(false)))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for i := 0; i < len(lines); {
		require.True(t, strings.HasPrefix(lines[i], "╭"), "line %d starts a block: %q", i, lines[i])
		for !strings.HasPrefix(lines[i], "╰") {
			i++
		}
		i++
	}
}

func TestDefaultPrinter(t *testing.T) {
	p, buf := newTestPrinter(t)
	beautify.SetDefault(p)
	t.Cleanup(func() { beautify.SetDefault(nil) })

	require.NoError(t, beautify.Print("one"))
	require.NoError(t, beautify.Println("two", "three"))
	out, err := beautify.Sprint("four")
	require.NoError(t, err)

	assert.Equal(t, "four", out)
	assert.Equal(t, "one\ntwo three\n", buf.String())
	assert.Same(t, p, beautify.Default())
}
