package runtime

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapviz/internal/dag"
	"github.com/leapstack-labs/leapviz/internal/module"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

// Node id prefixes of recorded lineage.
const (
	ValueNodePrefix     = "value:"
	OperationNodePrefix = "operation:"
)

// Attribute keys recorded on lineage nodes besides node_type and module_type.
const (
	AttrField    = "field"
	AttrDataType = "data_type"
	AttrJobID    = "job_id"
)

// Job is the result of running a module.
type Job struct {
	ID         string
	ModuleType string
	// Outputs maps output field names to the stored values.
	Outputs map[string]*core.Value
	// Lineage records input values -> operation -> output values.
	Lineage *dag.Graph
}

// LineageGraph implements core.LineageBearer.
func (j *Job) LineageGraph() core.LineageGraph {
	return j.Lineage
}

// Output returns the data of the named output.
func (j *Job) Output(name string) (any, bool) {
	v, ok := j.Outputs[name]
	if !ok {
		return nil, false
	}
	return v.Data, true
}

// ValueNodeID returns the lineage node id of a value.
func ValueNodeID(valueID string) string {
	return ValueNodePrefix + valueID
}

// Run processes the module registered as moduleType with inputs.
// Inputs and outputs are stored as values and linked to the operation in the
// job lineage, in schema order. Nothing is stored when processing fails.
func (r *Runtime) Run(ctx context.Context, moduleType string, inputs map[string]any) (*Job, error) {
	m, err := r.registry.Get(moduleType)
	if err != nil {
		return nil, err
	}

	ins := module.ValueMap(inputs)
	if err := module.ValidateInputs(m, ins); err != nil {
		return nil, &module.ProcessingError{ModuleType: moduleType, Err: err}
	}

	jobID := uuid.NewString()
	logger := r.logger.With("job_id", jobID, "module_type", moduleType)
	logger.Debug("running module")

	outs := module.ValueMap{}
	if err := m.Process(ctx, ins, outs); err != nil {
		logger.Debug("module failed", "error", err)
		return nil, err
	}

	graph := dag.NewGraph()
	job := &Job{
		ID:         jobID,
		ModuleType: moduleType,
		Outputs:    make(map[string]*core.Value),
		Lineage:    graph,
	}

	var inputNodes []string
	for _, f := range m.InputsSchema() {
		data, ok := inputs[f.Name]
		if !ok {
			continue
		}
		inputNodes = append(inputNodes, r.recordValue(graph, f, data).nodeID)
	}

	opID := OperationNodePrefix + jobID
	graph.AddNode(opID, core.Attributes{
		core.AttrNodeType:   core.NodeTypeOperation,
		core.AttrModuleType: moduleType,
		AttrJobID:           jobID,
	})
	for _, nodeID := range inputNodes {
		if err := graph.AddEdge(nodeID, opID); err != nil {
			return nil, fmt.Errorf("failed to record lineage: %w", err)
		}
	}

	for _, f := range m.OutputsSchema() {
		data, ok := outs[f.Name]
		if !ok {
			continue
		}
		rec := r.recordValue(graph, f, data)
		if err := graph.AddEdge(opID, rec.nodeID); err != nil {
			return nil, fmt.Errorf("failed to record lineage: %w", err)
		}
		job.Outputs[f.Name] = rec.value
	}

	logger.Debug("module finished", "outputs", len(job.Outputs),
		"lineage_nodes", graph.NodeCount(), "stored_values", r.ValueCount())
	return job, nil
}

type recordedValue struct {
	value  *core.Value
	nodeID string
}

// recordValue stores data as a value of field f and adds its lineage node.
func (r *Runtime) recordValue(graph *dag.Graph, f core.FieldSchema, data any) recordedValue {
	v := r.AddValue(f.Type, data)
	nodeID := ValueNodeID(v.ID)
	graph.AddNode(nodeID, core.Attributes{
		core.AttrNodeType: core.NodeTypeValue,
		AttrField:         f.Name,
		AttrDataType:      f.Type,
	})
	return recordedValue{value: v, nodeID: nodeID}
}
