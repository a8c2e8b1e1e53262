// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapviz/internal/cli/output"
)

// Value ids of the sample lineage document.
const (
	ColumnValueID       = "0b7c6a4e-7a43-4a4f-9a8e-5b0f7f3f8a01"
	TableValueID        = "0b7c6a4e-7a43-4a4f-9a8e-5b0f7f3f8a02"
	DistributionValueID = "0b7c6a4e-7a43-4a4f-9a8e-5b0f7f3f8a03"
)

// SampleDocument is a lineage document with one operation consuming two
// string values and producing a table value.
const SampleDocument = `
nodes:
  - id: "value:` + ColumnValueID + `"
    node_type: value
  - id: "value:` + DistributionValueID + `"
    node_type: value
  - id: "operation:1"
    node_type: operation
    module_type: viz_data_query
  - id: "value:` + TableValueID + `"
    node_type: value
edges:
  - from: "value:` + ColumnValueID + `"
    to: "operation:1"
  - from: "value:` + DistributionValueID + `"
    to: "operation:1"
  - from: "operation:1"
    to: "value:` + TableValueID + `"
values:
  - id: "` + ColumnValueID + `"
    data_type: string
    data: publication_name
  - id: "` + DistributionValueID + `"
    data_type: string
    data: month
  - id: "` + TableValueID + `"
    data_type: table
    data:
      columns: [date, publication_name, count]
      rows:
        - ["1900-01-01", "Le Temps", 12]
        - ["1900-02-01", "Le Temps", 7]
`

// WriteSampleDocument writes SampleDocument into a temporary directory and
// returns its path.
func WriteSampleDocument(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lineage.yaml")
	if err := os.WriteFile(path, []byte(SampleDocument), 0600); err != nil {
		t.Fatalf("failed to write lineage document: %v", err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, isTTY, mode),
		Out:      out,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
