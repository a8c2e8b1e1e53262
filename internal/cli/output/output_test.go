package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(mode Mode, isTTY bool) (*Renderer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewRendererWithTTY(out, isTTY, mode), out
}

func TestRenderer_Mode(t *testing.T) {
	tests := []struct {
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{"", false, ModeMarkdown},
		{ModeText, false, ModeText},
		{ModeJSON, true, ModeJSON},
	}
	for _, tt := range tests {
		r, _ := newTest(tt.mode, tt.isTTY)
		assert.Equal(t, tt.want, r.Mode(), "mode=%q tty=%v", tt.mode, tt.isTTY)
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.Mode())
}

func TestRenderer_Heading(t *testing.T) {
	r, out := newTest(ModeMarkdown, false)
	r.Heading("Lineage")
	assert.Equal(t, "## Lineage\n\n", out.String())

	r, out = newTest(ModeText, false)
	r.Heading("Lineage")
	assert.Equal(t, "Lineage\n", out.String())

	r, out = newTest(ModeJSON, false)
	r.Heading("Lineage")
	assert.Empty(t, out.String())
}

func TestRenderer_Code(t *testing.T) {
	r, out := newTest(ModeMarkdown, false)
	r.Code("sql", "SELECT 1")
	assert.Equal(t, "```sql\nSELECT 1\n```\n", out.String())

	r, out = newTest(ModeText, false)
	r.Code("sql", "SELECT 1")
	assert.Equal(t, "SELECT 1\n", out.String())
}

func TestRenderer_Table(t *testing.T) {
	r, out := newTest(ModeMarkdown, false)
	r.Table([]string{"id", "type"}, [][]any{{"value:a", "value"}})
	assert.Contains(t, out.String(), "| value:a | value |")

	r, out = newTest(ModeText, false)
	r.Table([]string{"id", "type"}, [][]any{{"value:a", "value"}})
	assert.Contains(t, out.String(), "value:a")
}

func TestRenderer_JSON(t *testing.T) {
	r, out := newTest(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]string{"query": "SELECT 1"}))
	assert.JSONEq(t, `{"query": "SELECT 1"}`, out.String())
}
