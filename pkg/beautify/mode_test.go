package beautify_test

import (
	"testing"

	"github.com/arthur-debert/beautify/pkg/beautify"
	"github.com/stretchr/testify/assert"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name  string
		flags beautify.Flags
		want  beautify.Mode
	}{
		{"none", beautify.Flags{}, beautify.Plain()},
		{"markdown", beautify.Flags{Markdown: true}, beautify.Markdown()},
		{"code", beautify.Flags{Code: true, Language: "py"}, beautify.Code("py")},
		{"table", beautify.Flags{Table: true}, beautify.Table()},
		{"markdown over code", beautify.Flags{Markdown: true, Code: true}, beautify.Markdown()},
		{"markdown over table", beautify.Flags{Markdown: true, Table: true}, beautify.Markdown()},
		{"code over table", beautify.Flags{Code: true, Table: true, Language: "go"}, beautify.Code("go")},
		{"all", beautify.Flags{Markdown: true, Code: true, Table: true}, beautify.Markdown()},
		{"language alone", beautify.Flags{Language: "go"}, beautify.Plain()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, beautify.ResolveMode(tt.flags))
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "plain", beautify.Plain().String())
	assert.Equal(t, "code(go)", beautify.Code("go").String())
	assert.Equal(t, "code", beautify.Code("").String())
	assert.Equal(t, "table", beautify.Table().String())
}

func TestParseFrame(t *testing.T) {
	for _, f := range []beautify.Frame{beautify.FrameAuto, beautify.FramePanel, beautify.FrameRule, beautify.FrameNone} {
		got, err := beautify.ParseFrame(f.String())
		assert.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := beautify.ParseFrame("box")
	assert.Error(t, err)
}
