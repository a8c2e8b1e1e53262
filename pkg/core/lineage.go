package core

import (
	"encoding/json"
	"sort"
)

// Lineage node types.
const (
	NodeTypeOperation = "operation"
	NodeTypeValue     = "value"
)

// Well-known attribute keys on lineage nodes.
const (
	AttrNodeType   = "node_type"
	AttrModuleType = "module_type"
)

// Attributes holds the raw attributes of a lineage node.
type Attributes map[string]any

// NodeType returns the node_type attribute, or "" if absent or not a string.
func (a Attributes) NodeType() string {
	return a.str(AttrNodeType)
}

// ModuleType returns the module_type attribute, or "" if absent or not a string.
func (a Attributes) ModuleType() string {
	return a.str(AttrModuleType)
}

func (a Attributes) str(key string) string {
	if s, ok := a[key].(string); ok {
		return s
	}
	return ""
}

// GraphNode is a lineage node as enumerated by a LineageGraph.
type GraphNode struct {
	ID    string
	Attrs Attributes
}

// LineageGraph is the read-only view of a provenance DAG.
type LineageGraph interface {
	// Nodes returns all nodes in the graph's native iteration order.
	Nodes() []GraphNode
	// Predecessors returns the direct producers of the node, in graph order.
	Predecessors(id string) []string
}

// LineageBearer is anything that carries a lineage graph (a job, a loaded document).
type LineageBearer interface {
	LineageGraph() LineageGraph
}

// NodeInfo is the enrichment record attached to a lineage node.
// Operations carry the full module type record; values carry a preview.
type NodeInfo struct {
	*ModuleTypeInfo
	Preview string `json:"preview,omitempty"`
}

// MarshalJSON encodes operation records as the module type record and value
// records as {"preview": ...}, keeping the preview key even when it is empty.
func (n NodeInfo) MarshalJSON() ([]byte, error) {
	if n.ModuleTypeInfo != nil {
		type operationInfo NodeInfo
		return json.Marshal(operationInfo(n))
	}
	return json.Marshal(struct {
		Preview string `json:"preview"`
	}{n.Preview})
}

// AugmentedNode is a lineage node with parents and enrichment attached.
type AugmentedNode struct {
	ID        string     `json:"id"`
	Desc      Attributes `json:"desc"`
	ParentIDs []string   `json:"parentIds"`
	Info      NodeInfo   `json:"info"`
}

// AugmentedGraph maps the zero-based enumeration position of a node to its record.
type AugmentedGraph map[int]AugmentedNode

// Len returns the number of records.
func (g AugmentedGraph) Len() int {
	return len(g)
}

// Ordered returns the records sorted by enumeration position.
func (g AugmentedGraph) Ordered() []AugmentedNode {
	keys := make([]int, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	nodes := make([]AugmentedNode, 0, len(keys))
	for _, k := range keys {
		nodes = append(nodes, g[k])
	}
	return nodes
}

// Find returns the record for the node with the given id.
func (g AugmentedGraph) Find(id string) (AugmentedNode, bool) {
	for _, n := range g {
		if n.ID == id {
			return n, true
		}
	}
	return AugmentedNode{}, false
}
