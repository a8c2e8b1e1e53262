// Package lineage attaches descriptive metadata to the nodes of a lineage graph.
//
// A lineage graph records how values were produced by operations during a
// pipeline run. Augment walks such a graph and, for every node, collects its
// direct producers and an enrichment record obtained from the host runtime:
//
//   - operation nodes carry the full module type record of their module_type
//   - value nodes carry a short textual preview of the value
//
// # Basic Usage
//
//	graph, err := lineage.Augment(ctx, job, rt)
//	if err != nil {
//	    return err
//	}
//	for _, n := range graph.Ordered() {
//	    fmt.Printf("%s <- %v\n", n.ID, n.ParentIDs)
//	}
//
// Value node ids carry a fixed-width prefix in front of the value id
// ("value:<id>"); its length is DefaultValuePrefixLen and can be changed with
// WithValuePrefixLen when the host uses another id scheme.
//
// Runtime lookups are not cached: each node triggers its own calls. Errors
// returned by the runtime are passed back to the caller untouched.
package lineage
