package lineage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapviz/pkg/core"
)

// DefaultValuePrefixLen is the length of the prefix in front of the value id
// in value node ids ("value:" in "value:<id>").
const DefaultValuePrefixLen = 6

// DefaultRenderTarget is the format value previews are rendered to.
const DefaultRenderTarget = core.RenderTargetString

// Option configures Augment.
type Option func(*options)

type options struct {
	prefixLen    int
	renderTarget string
	logger       *slog.Logger
}

// WithValuePrefixLen sets the number of leading bytes stripped from value node ids.
func WithValuePrefixLen(n int) Option {
	return func(o *options) {
		o.prefixLen = n
	}
}

// WithRenderTarget sets the format value previews are rendered to.
func WithRenderTarget(target string) Option {
	return func(o *options) {
		o.renderTarget = target
	}
}

// WithLogger sets the logger (nil uses a discard logger).
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// MalformedNodeIDError is returned for a value node whose id is too short to
// hold the prefix and a value id.
type MalformedNodeIDError struct {
	NodeID    string
	PrefixLen int
}

func (e *MalformedNodeIDError) Error() string {
	return fmt.Sprintf("value node id %q is too short for a %d-character prefix", e.NodeID, e.PrefixLen)
}

// ValueID strips the prefix of a value node id.
func ValueID(nodeID string, prefixLen int) (string, error) {
	if prefixLen < 0 || len(nodeID) <= prefixLen {
		return "", &MalformedNodeIDError{NodeID: nodeID, PrefixLen: prefixLen}
	}
	return nodeID[prefixLen:], nil
}

// Augment walks the lineage graph of item and returns one record per node,
// keyed by the node's position in the graph's iteration order.
//
// Errors from rt are returned as-is. A node that is neither an operation nor
// a value fails with a *core.UnknownNodeTypeError.
func Augment(ctx context.Context, item core.LineageBearer, rt core.Runtime, opts ...Option) (core.AugmentedGraph, error) {
	o := options{
		prefixLen:    DefaultValuePrefixLen,
		renderTarget: DefaultRenderTarget,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	graph := item.LineageGraph()
	nodes := graph.Nodes()
	augmented := make(core.AugmentedGraph, len(nodes))

	for idx, node := range nodes {
		info, err := nodeInfo(ctx, node, rt, &o)
		if err != nil {
			o.logger.Debug("augmenting lineage node failed", "index", idx, "id", node.ID, "error", err)
			return nil, err
		}

		parents := graph.Predecessors(node.ID)
		if parents == nil {
			parents = []string{}
		}

		augmented[idx] = core.AugmentedNode{
			ID:        node.ID,
			Desc:      node.Attrs,
			ParentIDs: parents,
			Info:      info,
		}
		o.logger.Debug("augmented lineage node", "index", idx, "id", node.ID, "parents", len(parents))
	}

	return augmented, nil
}

// nodeInfo resolves the enrichment record of a single node.
func nodeInfo(ctx context.Context, node core.GraphNode, rt core.Runtime, o *options) (core.NodeInfo, error) {
	switch nodeType := node.Attrs.NodeType(); nodeType {
	case core.NodeTypeOperation:
		info, err := rt.ResolveModuleType(ctx, node.Attrs.ModuleType())
		if err != nil {
			return core.NodeInfo{}, err
		}
		return core.NodeInfo{ModuleTypeInfo: info}, nil

	case core.NodeTypeValue:
		valueID, err := ValueID(node.ID, o.prefixLen)
		if err != nil {
			return core.NodeInfo{}, err
		}
		v, err := rt.GetValue(ctx, valueID)
		if err != nil {
			return core.NodeInfo{}, err
		}
		rendered, err := rt.RenderValue(ctx, v, o.renderTarget)
		if err != nil {
			return core.NodeInfo{}, err
		}
		return core.NodeInfo{Preview: rendered.Rendered}, nil

	default:
		return core.NodeInfo{}, &core.UnknownNodeTypeError{NodeID: node.ID, NodeType: nodeType}
	}
}
