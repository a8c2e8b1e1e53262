// Package output renders CLI results as styled text, markdown or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// Renderer writes command results in the selected mode.
type Renderer struct {
	out   io.Writer
	isTTY bool
	mode  Mode
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, isTTY: isTTY, mode: mode}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the effective mode: auto resolves to text on a terminal and
// markdown otherwise.
func (r *Renderer) Mode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Heading writes a section title.
func (r *Renderer) Heading(title string) {
	switch r.Mode() {
	case ModeMarkdown:
		_, _ = fmt.Fprintf(r.out, "## %s\n\n", title)
	case ModeJSON:
		// JSON output carries no headings.
	default:
		if r.isTTY {
			title = headingStyle.Render(title)
		}
		_, _ = fmt.Fprintln(r.out, title)
	}
}

// Code writes a code snippet, fenced in markdown mode.
func (r *Renderer) Code(lang, code string) {
	if r.Mode() == ModeMarkdown {
		_, _ = fmt.Fprintf(r.out, "```%s\n%s\n```\n", lang, code)
		return
	}
	_, _ = fmt.Fprintln(r.out, code)
}

// Table writes rows under header as a text or markdown table.
func (r *Renderer) Table(header []string, rows [][]any) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	h := make(table.Row, len(header))
	for i, col := range header {
		h[i] = col
	}
	t.AppendHeader(h)
	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}

	if r.Mode() == ModeMarkdown {
		_, _ = fmt.Fprintln(r.out, t.RenderMarkdown())
		return
	}
	_, _ = fmt.Fprintln(r.out, t.Render())
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Println writes a plain line.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}
