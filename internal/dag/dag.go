// Package dag provides the directed acyclic graph used to record lineage.
// Nodes keep their insertion order, which is the graph's native iteration order.
package dag

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapviz/pkg/core"
)

// Node represents a node in the DAG.
type Node struct {
	// ID is the unique identifier (e.g. "value:<uuid>")
	ID string
	// Attrs holds the node attributes (node_type, module_type, ...)
	Attrs core.Attributes
}

// Graph represents a directed acyclic graph.
type Graph struct {
	nodes   map[string]*Node
	order   []string            // insertion order
	edges   map[string][]string // parent -> children (consumers)
	parents map[string][]string // child -> parents (producers)
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Adding an existing id replaces its attributes and keeps its position.
func (g *Graph) AddNode(id string, attrs core.Attributes) {
	if attrs == nil {
		attrs = core.Attributes{}
	}
	if node, exists := g.nodes[id]; exists {
		node.Attrs = attrs
		return
	}
	g.nodes[id] = &Node{ID: id, Attrs: attrs}
	g.order = append(g.order, id)
	g.edges[id] = []string{}
	g.parents[id] = []string{}
}

// AddEdge adds a directed edge from parent to child (child was produced from parent).
func (g *Graph) AddEdge(parentID, childID string) error {
	if _, exists := g.nodes[parentID]; !exists {
		return fmt.Errorf("parent node %q does not exist", parentID)
	}
	if _, exists := g.nodes[childID]; !exists {
		return fmt.Errorf("child node %q does not exist", childID)
	}

	if parentID == childID {
		return fmt.Errorf("self-loop detected: %s", parentID)
	}

	if !contains(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
	}
	if !contains(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}

	return nil
}

// GetNode returns a node by ID.
func (g *Graph) GetNode(id string) (*Node, bool) {
	node, exists := g.nodes[id]
	return node, exists
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []core.GraphNode {
	nodes := make([]core.GraphNode, 0, len(g.order))
	for _, id := range g.order {
		n := g.nodes[id]
		nodes = append(nodes, core.GraphNode{ID: n.ID, Attrs: n.Attrs})
	}
	return nodes
}

// Predecessors returns a copy of the node's parents in the order the edges were added.
func (g *Graph) Predecessors(id string) []string {
	return append([]string{}, g.parents[id]...)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.edges {
		count += len(children)
	}
	return count
}

// HasCycle returns true if the graph contains a cycle, along with the cycle path.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make(map[string]string)

	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		recStack[id] = true

		for _, childID := range g.edges[id] {
			if !visited[childID] {
				path[childID] = id
				if dfs(childID) {
					return true
				}
			} else if recStack[childID] {
				cyclePath = []string{childID}
				for curr := id; curr != childID; curr = path[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{childID}, cyclePath...)
				return true
			}
		}

		recStack[id] = false
		return false
	}

	for _, id := range g.order {
		if !visited[id] {
			if dfs(id) {
				return true, cyclePath
			}
		}
	}

	return false, nil
}

// GetDownstreamNodes returns all nodes derived from the given node.
func (g *Graph) GetDownstreamNodes(id string) []string {
	return g.walk(id, g.edges)
}

// GetUpstreamNodes returns all nodes the given node was derived from.
func (g *Graph) GetUpstreamNodes(id string) []string {
	return g.walk(id, g.parents)
}

func (g *Graph) walk(id string, next map[string][]string) []string {
	seen := make(map[string]bool)

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, n := range next[nodeID] {
			if !seen[n] {
				seen[n] = true
				mark(n)
			}
		}
	}
	mark(id)

	result := make([]string, 0, len(seen))
	for nodeID := range seen {
		result = append(result, nodeID)
	}
	sort.Strings(result)
	return result
}

// GetRoots returns nodes with no parents, in insertion order.
func (g *Graph) GetRoots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// GetLeaves returns nodes with no children, in insertion order.
func (g *Graph) GetLeaves() []string {
	var leaves []string
	for _, id := range g.order {
		if len(g.edges[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// View returns a read-only view enumerating only the given nodes, in
// insertion order. Predecessors are still answered from the whole graph, so
// producers outside the view are reported.
func (g *Graph) View(nodeIDs []string) *View {
	keep := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		keep[id] = true
	}
	return &View{graph: g, keep: keep}
}

// View is a node-restricted view of a Graph.
type View struct {
	graph *Graph
	keep  map[string]bool
}

var _ core.LineageGraph = (*View)(nil)

// Nodes returns the kept nodes in the graph's insertion order.
func (v *View) Nodes() []core.GraphNode {
	var nodes []core.GraphNode
	for _, n := range v.graph.Nodes() {
		if v.keep[n.ID] {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Predecessors returns the node's parents in the whole graph.
func (v *View) Predecessors(id string) []string {
	return v.graph.Predecessors(id)
}

// contains checks if a slice contains a string.
func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
