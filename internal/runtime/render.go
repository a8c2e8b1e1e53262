package runtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapviz/pkg/core"
)

// RenderValue implements core.Runtime.
// Supported targets are string, markdown and json.
func (r *Runtime) RenderValue(_ context.Context, v *core.Value, targetFormat string) (*core.RenderResult, error) {
	var (
		rendered string
		err      error
	)

	switch targetFormat {
	case core.RenderTargetString:
		rendered = r.renderText(v, false)
	case core.RenderTargetMarkdown:
		rendered = r.renderText(v, true)
	case core.RenderTargetJSON:
		rendered, err = renderJSON(v)
	default:
		return nil, &core.UnsupportedRenderTargetError{Target: targetFormat, DataType: v.DataType}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render value %s: %w", v.ID, err)
	}

	return &core.RenderResult{TargetFormat: targetFormat, Rendered: rendered}, nil
}

func (r *Runtime) renderText(v *core.Value, markdown bool) string {
	if t, ok := asTable(v.Data); ok {
		return r.renderTable(t, markdown)
	}
	switch d := v.Data.(type) {
	case nil:
		return ""
	case string:
		return d
	case []byte:
		return string(d)
	default:
		return fmt.Sprint(d)
	}
}

func (r *Runtime) renderTable(data *core.Table, markdown bool) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(data.Columns))
	for i, col := range data.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	rows := data.Rows
	truncated := r.previewRows > 0 && len(rows) > r.previewRows
	if truncated {
		rows = rows[:r.previewRows]
	}
	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}

	var out string
	if markdown {
		out = t.RenderMarkdown()
	} else {
		out = t.Render()
	}
	if truncated {
		out += fmt.Sprintf("\n(showing %d of %d rows)", len(rows), len(data.Rows))
	}
	return out
}

func renderJSON(v *core.Value) (string, error) {
	b, err := json.Marshal(v.Data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func asTable(data any) (*core.Table, bool) {
	switch t := data.(type) {
	case core.Table:
		return &t, true
	case *core.Table:
		return t, t != nil
	default:
		return nil, false
	}
}
