package vizquery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapviz/internal/module"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

func TestModule_Schema(t *testing.T) {
	m := NewModule(nil)

	assert.Equal(t, "viz_data_query", m.TypeName())
	assert.NotEmpty(t, m.Doc())

	info := module.Describe(m)
	dist, ok := info.Input(InputDistribution)
	require.True(t, ok)
	assert.Equal(t, "string", dist.Type)
	assert.Contains(t, dist.Doc, "'day'")

	col, ok := info.Input(InputColumn)
	require.True(t, ok)
	assert.Equal(t, "string", col.Type)

	q, ok := info.Output(OutputQuery)
	require.True(t, ok)
	assert.Equal(t, "string", q.Type)
}

func TestModule_Process(t *testing.T) {
	m := NewModule(nil)
	outputs := module.ValueMap{}

	err := m.Process(context.Background(), module.ValueMap{
		InputDistribution: "year",
		InputColumn:       "title",
	}, outputs)
	require.NoError(t, err)

	want, err := Synthesize("year", "title")
	require.NoError(t, err)
	assert.Equal(t, want, outputs[OutputQuery])
}

func TestModule_ProcessInvalidDistribution(t *testing.T) {
	m := NewModule(nil)
	outputs := module.ValueMap{}

	err := m.Process(context.Background(), module.ValueMap{
		InputDistribution: "week",
		InputColumn:       "title",
	}, outputs)

	var procErr *module.ProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, ModuleTypeName, procErr.ModuleType)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.NotContains(t, outputs, OutputQuery)
}

func TestModule_ProcessMissingInput(t *testing.T) {
	err := NewModule(nil).Process(context.Background(), module.ValueMap{
		InputDistribution: "day",
	}, module.ValueMap{})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestRegister(t *testing.T) {
	reg := module.NewRegistry()
	require.NoError(t, Register(reg, Options{Table: "corpus"}))

	m, err := reg.Get(ModuleTypeName)
	require.NoError(t, err)

	outputs := module.ValueMap{}
	require.NoError(t, m.Process(context.Background(), module.ValueMap{
		InputDistribution: "day",
		InputColumn:       "author",
	}, outputs))
	assert.Contains(t, outputs[OutputQuery], "FROM corpus")
}
