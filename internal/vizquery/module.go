package vizquery

import (
	"context"

	"github.com/leapstack-labs/leapviz/internal/module"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

// ModuleTypeName is the registry name of the query module.
const ModuleTypeName = "viz_data_query"

// Input and output names of the query module.
const (
	InputDistribution = "distribution"
	InputColumn       = "column"
	OutputQuery       = "query"
)

// Module exposes a Synthesizer as the viz_data_query processing module.
type Module struct {
	synth *Synthesizer
}

// NewModule creates the module around s (nil uses the default dataset).
func NewModule(s *Synthesizer) *Module {
	if s == nil {
		s = defaultSynthesizer
	}
	return &Module{synth: s}
}

// Register adds the query module, configured with opts, to reg.
func Register(reg *module.Registry, opts Options) error {
	return reg.Register(NewModule(New(opts)))
}

// TypeName implements module.Module.
func (m *Module) TypeName() string {
	return ModuleTypeName
}

// Doc implements module.Module.
func (m *Module) Doc() string {
	return "Builds the query aggregating a corpus by a period of time, " +
		"used to display its distribution and to help subset the table."
}

// InputsSchema implements module.Module.
func (m *Module) InputsSchema() []core.FieldSchema {
	return []core.FieldSchema{
		{
			Name: InputDistribution,
			Type: "string",
			Doc:  "The wished data periodicity to display on visualization, values can be either 'day', 'month' or 'year'.",
		},
		{
			Name: InputColumn,
			Type: "string",
			Doc:  "The column that contains publication names or ref/id.",
		},
	}
}

// OutputsSchema implements module.Module.
func (m *Module) OutputsSchema() []core.FieldSchema {
	return []core.FieldSchema{
		{
			Name: OutputQuery,
			Type: "string",
			Doc:  "The query to pass to the sql query module.",
		},
	}
}

// Process implements module.Module.
func (m *Module) Process(_ context.Context, inputs, outputs module.ValueMap) error {
	distribution, err := inputs.GetString(InputDistribution)
	if err != nil {
		return &module.ProcessingError{ModuleType: ModuleTypeName, Err: err}
	}
	column, err := inputs.GetString(InputColumn)
	if err != nil {
		return &module.ProcessingError{ModuleType: ModuleTypeName, Err: err}
	}

	query, err := m.synth.Synthesize(distribution, column)
	if err != nil {
		return &module.ProcessingError{ModuleType: ModuleTypeName, Err: err}
	}

	outputs.Set(OutputQuery, query)
	return nil
}
