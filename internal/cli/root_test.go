package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapviz/internal/cli/testutil"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"version", "query", "lineage", "modules", "completion"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, found.Name())
	}
}

func TestRootCommand_QueryJSON(t *testing.T) {
	out, _, err := run(t, "query", "-d", "day", "-c", "author", "-o", "json", "--table", "articles")
	require.NoError(t, err)

	var got struct {
		Query string `json:"query"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got.Query, "FROM articles")
	assert.Contains(t, got.Query, "concat('01/', month, '/', year)")
}

func TestRootCommand_QueryRunJSON(t *testing.T) {
	out, _, err := run(t, "query", "-d", "year", "-c", "author", "--run", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Query   string              `json:"query"`
		Lineage core.AugmentedGraph `json:"lineage"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got.Query, "YEAR(date)")
	require.Equal(t, 4, got.Lineage.Len())

	op := got.Lineage[2]
	assert.Equal(t, core.NodeTypeOperation, op.Desc.NodeType())
	require.NotNil(t, op.Info.ModuleTypeInfo)
	assert.Equal(t, "viz_data_query", op.Info.TypeName)
	assert.Len(t, op.ParentIDs, 2)

	assert.Equal(t, "year", got.Lineage[0].Info.Preview)
	assert.Equal(t, "author", got.Lineage[1].Info.Preview)
	assert.Equal(t, got.Query, got.Lineage[3].Info.Preview)
}

func TestRootCommand_LineageText(t *testing.T) {
	path := testutil.WriteSampleDocument(t)

	out, _, err := run(t, "lineage", path, "-o", "text", "--preview-rows", "1")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "operation:1")
	assert.Contains(t, out, "Le Temps")
	assert.Contains(t, out, "(showing 1 of 2 rows)")
}

func TestRootCommand_LineagePrefixLen(t *testing.T) {
	path := testutil.WriteSampleDocument(t)

	// Stripping one character less leaves ":" in front of the value id.
	_, _, err := run(t, "lineage", path, "--value-prefix-len", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "leapviz.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("table: events\ndate_column: happened_at\noutput: json\n"), 0600))

	out, _, err := run(t, "--config", cfgPath, "query", "-d", "month", "-c", "kind")
	require.NoError(t, err)
	assert.Contains(t, out, "MONTH(happened_at)")
	assert.Contains(t, out, "FROM events")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, _, err := run(t, "query", "-d", "day", "-c", "author", "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	_, errOut, err := run(t, "query", "-d", "day", "-c", "author", "--run", "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
}

func TestRootCommand_Completion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "leapviz")
}
