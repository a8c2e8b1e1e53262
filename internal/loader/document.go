// Package loader reads lineage documents: YAML files describing a lineage
// graph and the values its value nodes refer to.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapviz/internal/dag"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

// Document is a loaded lineage document.
type Document struct {
	// Graph holds the nodes in document order.
	Graph *dag.Graph
	// Values holds the values referenced by value nodes.
	Values []*core.Value
}

// LineageGraph implements core.LineageBearer.
func (d *Document) LineageGraph() core.LineageGraph {
	return d.Graph
}

// Focus returns the document's lineage limited to the node id and, when
// requested, its upstream and downstream nodes. Parents outside the focus set
// are still reported.
func (d *Document) Focus(id string, upstream, downstream bool) (core.LineageBearer, error) {
	if _, ok := d.Graph.GetNode(id); !ok {
		return nil, &core.InvalidInputError{Field: "focus node", Value: id, Message: "node not found"}
	}

	ids := []string{id}
	if upstream {
		ids = append(ids, d.Graph.GetUpstreamNodes(id)...)
	}
	if downstream {
		ids = append(ids, d.Graph.GetDownstreamNodes(id)...)
	}
	return focusView{graph: d.Graph.View(ids)}, nil
}

type focusView struct {
	graph *dag.View
}

func (f focusView) LineageGraph() core.LineageGraph {
	return f.graph
}

// ValueStore receives the values of a document.
type ValueStore interface {
	PutValue(v *core.Value) error
}

// Populate stores every document value in store.
func (d *Document) Populate(store ValueStore) error {
	for _, v := range d.Values {
		if err := store.PutValue(v); err != nil {
			return fmt.Errorf("failed to store value %s: %w", v.ID, err)
		}
	}
	return nil
}

// ParseError represents a lineage document parsing error.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// documentYAML is the on-disk layout.
type documentYAML struct {
	Nodes  []nodeYAML  `yaml:"nodes"`
	Edges  []edgeYAML  `yaml:"edges"`
	Values []valueYAML `yaml:"values"`
}

type nodeYAML struct {
	ID         string         `yaml:"id"`
	NodeType   string         `yaml:"node_type"`
	ModuleType string         `yaml:"module_type"`
	Attrs      map[string]any `yaml:"attrs"`
}

type edgeYAML struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type valueYAML struct {
	ID       string    `yaml:"id"`
	DataType string    `yaml:"data_type"`
	Data     yaml.Node `yaml:"data"`
}

// Load reads the lineage document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lineage document: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.File = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse decodes a lineage document. Unknown fields, duplicate node ids,
// edges between unknown nodes and cycles are rejected.
func Parse(data []byte) (*Document, error) {
	var raw documentYAML
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	graph := dag.NewGraph()
	for i, n := range raw.Nodes {
		if n.ID == "" {
			return nil, &ParseError{Message: fmt.Sprintf("nodes[%d]: id is required", i)}
		}
		if _, exists := graph.GetNode(n.ID); exists {
			return nil, &ParseError{Message: fmt.Sprintf("nodes[%d]: duplicate node id %q", i, n.ID)}
		}
		graph.AddNode(n.ID, n.attributes())
	}

	for i, e := range raw.Edges {
		if err := graph.AddEdge(e.From, e.To); err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("edges[%d]: %v", i, err)}
		}
	}

	if hasCycle, path := graph.HasCycle(); hasCycle {
		return nil, &ParseError{Message: fmt.Sprintf("lineage contains a cycle: %v", path)}
	}

	values := make([]*core.Value, 0, len(raw.Values))
	for i, v := range raw.Values {
		value, err := v.decode()
		if err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("values[%d]: %v", i, err)}
		}
		values = append(values, value)
	}

	return &Document{Graph: graph, Values: values}, nil
}

// attributes merges the typed fields into the free-form attrs.
func (n nodeYAML) attributes() core.Attributes {
	attrs := core.Attributes{}
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	if n.NodeType != "" {
		attrs[core.AttrNodeType] = n.NodeType
	}
	if n.ModuleType != "" {
		attrs[core.AttrModuleType] = n.ModuleType
	}
	return attrs
}

// decode converts the YAML value, reading table data into a core.Table.
func (v valueYAML) decode() (*core.Value, error) {
	if v.ID == "" {
		return nil, errors.New("id is required")
	}
	value := &core.Value{ID: v.ID, DataType: v.DataType}

	if v.Data.Kind == 0 {
		return value, nil
	}

	if v.DataType == core.DataTypeTable {
		var t core.Table
		if err := v.Data.Decode(&t); err != nil {
			return nil, fmt.Errorf("invalid table data: %w", err)
		}
		value.Data = t
		return value, nil
	}

	var data any
	if err := v.Data.Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	value.Data = data
	return value, nil
}
