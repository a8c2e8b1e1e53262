package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapviz/internal/cli/config"
	"github.com/leapstack-labs/leapviz/internal/cli/output"
	"github.com/leapstack-labs/leapviz/internal/cli/testutil"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, cmd, config.Default(), args...)
}

func executeWithConfig(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	cmd.SetContext(config.WithConfig(context.Background(), cfg))

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewQueryCommand(t *testing.T) {
	cmd := NewQueryCommand()

	assert.Equal(t, "query", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"distribution", "column", "run"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestQueryCommand(t *testing.T) {
	out, err := execute(t, NewQueryCommand(), "--distribution", "year", "--column", "author")
	require.NoError(t, err)

	assert.Contains(t, out, "```sql")
	assert.Contains(t, out, "SELECT strptime(year, '%Y') as date, author as publication_name, count "+
		"FROM (SELECT YEAR(date) as year, author, count(*) as count FROM data GROUP BY author, YEAR(date))")
}

func TestQueryCommand_InvalidDistribution(t *testing.T) {
	_, err := execute(t, NewQueryCommand(), "-d", "week", "-c", "author")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestQueryCommand_MissingFlags(t *testing.T) {
	_, err := execute(t, NewQueryCommand(), "-d", "day")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column")
}

func TestQueryCommand_Run(t *testing.T) {
	out, err := execute(t, NewQueryCommand(), "-d", "month", "-c", "publisher", "--run")
	require.NoError(t, err)

	assert.Contains(t, out, "## Query")
	assert.Contains(t, out, "## Lineage")
	assert.Contains(t, out, "module viz_data_query")
	assert.Contains(t, out, "publisher")
}

func TestNewLineageCommand(t *testing.T) {
	cmd := NewLineageCommand()

	assert.Equal(t, "lineage <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"focus", "upstream", "downstream"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestLineageCommand(t *testing.T) {
	out, err := execute(t, NewLineageCommand(), testutil.WriteSampleDocument(t))
	require.NoError(t, err)

	assert.Contains(t, out, "operation:1")
	assert.Contains(t, out, "module viz_data_query")
	assert.Contains(t, out, "publication_name")
	assert.Contains(t, out, "Le Temps")
	testutil.AssertValidMarkdown(t, out)
}

func TestLineageCommand_Focus(t *testing.T) {
	path := testutil.WriteSampleDocument(t)
	cfg := config.Default()
	cfg.OutputFormat = "json"

	out, err := executeWithConfig(t, NewLineageCommand(), cfg, path,
		"--focus", "value:"+testutil.ColumnValueID, "--upstream=false")
	require.NoError(t, err)

	var got core.AugmentedGraph
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	var ids []string
	for _, n := range got.Ordered() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"value:" + testutil.ColumnValueID, "operation:1", "value:" + testutil.TableValueID}, ids)

	// The distribution value is outside the focus set but still produces the operation.
	op, ok := got.Find("operation:1")
	require.True(t, ok)
	assert.Equal(t, []string{"value:" + testutil.ColumnValueID, "value:" + testutil.DistributionValueID}, op.ParentIDs)

	_, err = execute(t, NewLineageCommand(), path, "--focus", "value:missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestLineageCommand_Summary(t *testing.T) {
	out, err := execute(t, NewLineageCommand(), testutil.WriteSampleDocument(t))
	require.NoError(t, err)

	assert.Contains(t, out, "4 nodes, 3 edges. Roots: value:"+testutil.ColumnValueID+", value:"+testutil.DistributionValueID+
		". Leaves: value:"+testutil.TableValueID+".")
}

func TestQueryCommand_UsesContextConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Table = "articles"
	cfg.DateColumn = "published"

	out, err := executeWithConfig(t, NewQueryCommand(), cfg, "-d", "month", "-c", "author")
	require.NoError(t, err)
	assert.Contains(t, out, "FROM articles")
	assert.Contains(t, out, "MONTH(published)")
}

func TestLineageCommand_MissingFile(t *testing.T) {
	_, err := execute(t, NewLineageCommand(), filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
}

func TestModulesCommand(t *testing.T) {
	out, err := execute(t, NewModulesCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "viz_data_query")

	out, err = execute(t, NewModulesCommand(), "viz_data_query")
	require.NoError(t, err)
	assert.Contains(t, out, "distribution")
	assert.Contains(t, out, "column")
	assert.Contains(t, out, "query")

	_, err = execute(t, NewModulesCommand(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownModuleType)
}

func TestInfoSummary(t *testing.T) {
	assert.Equal(t, "module viz_data_query",
		infoSummary(core.NodeInfo{ModuleTypeInfo: &core.ModuleTypeInfo{TypeName: "viz_data_query"}}))
	assert.Equal(t, "hello", infoSummary(core.NodeInfo{Preview: "hello"}))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "a<br>b", cell("a\nb\n", true))
	assert.Equal(t, "a\nb\n", cell("a\nb\n", false))
}

func sampleAugmented() core.AugmentedGraph {
	return core.AugmentedGraph{
		0: {
			ID:        "value:a",
			Desc:      core.Attributes{core.AttrNodeType: core.NodeTypeValue},
			ParentIDs: []string{},
			Info:      core.NodeInfo{Preview: "line one\nline two"},
		},
		1: {
			ID:        "operation:b",
			Desc:      core.Attributes{core.AttrNodeType: core.NodeTypeOperation, core.AttrModuleType: "viz_data_query"},
			ParentIDs: []string{"value:a"},
			Info:      core.NodeInfo{ModuleTypeInfo: &core.ModuleTypeInfo{TypeName: "viz_data_query"}},
		},
	}
}

func TestRenderAugmented(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeAuto, false)
		require.NoError(t, renderAugmented(tr.Renderer, "Lineage", sampleAugmented()))

		out := tr.Output()
		assert.Contains(t, out, "## Lineage")
		assert.Contains(t, out, "line one<br>line two")
		assert.Contains(t, out, "module viz_data_query")
		testutil.AssertValidMarkdown(t, out)
		testutil.AssertNoANSI(t, out)
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeJSON, false)
		require.NoError(t, renderAugmented(tr.Renderer, "Lineage", sampleAugmented()))

		var got core.AugmentedGraph
		require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &got))
		require.Equal(t, 2, got.Len())
		assert.Equal(t, []string{"value:a"}, got[1].ParentIDs)
	})
}
