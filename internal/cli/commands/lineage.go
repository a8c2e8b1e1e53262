package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapviz/internal/cli/output"
	"github.com/leapstack-labs/leapviz/internal/dag"
	"github.com/leapstack-labs/leapviz/internal/loader"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

// LineageOptions holds options for the lineage command.
type LineageOptions struct {
	Focus      string
	Upstream   bool
	Downstream bool
}

// NewLineageCommand creates the lineage command.
func NewLineageCommand() *cobra.Command {
	opts := &LineageOptions{}

	cmd := &cobra.Command{
		Use:   "lineage <file>",
		Short: "Annotate the lineage in a document",
		Long: `Load a lineage document and print its nodes annotated for visualization.

Operation nodes show the metadata of their module type, value nodes a
rendered preview of their value. Use --focus to restrict the output to a
node and its upstream and downstream neighbourhood.`,
		Example: `  # Annotate a whole document
  leapviz lineage lineage.yaml

  # Show a node and what it was derived from
  leapviz lineage lineage.yaml --focus value:7f1c... --downstream=false

  # Output as JSON
  leapviz lineage lineage.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineage(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Focus, "focus", "", "Restrict output to this node and its relatives")
	cmd.Flags().BoolVar(&opts.Upstream, "upstream", true, "Include upstream nodes of the focus node")
	cmd.Flags().BoolVar(&opts.Downstream, "downstream", true, "Include downstream nodes of the focus node")

	return cmd
}

func runLineage(cmd *cobra.Command, path string, opts *LineageOptions) error {
	doc, err := loader.Load(path)
	if err != nil {
		return err
	}

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := doc.Populate(cc.Runtime); err != nil {
		return err
	}
	cc.Logger.Debug("loaded lineage document", "file", path,
		"nodes", doc.Graph.NodeCount(), "values", cc.Runtime.ValueCount())

	var item core.LineageBearer = doc
	title := "Lineage: " + path
	if opts.Focus != "" {
		item, err = doc.Focus(opts.Focus, opts.Upstream, opts.Downstream)
		if err != nil {
			return err
		}
		title = "Lineage: " + opts.Focus
	}

	graph, err := cc.Augment(cmd, item)
	if err != nil {
		return err
	}
	if err := renderAugmented(cc.Renderer, title, graph); err != nil {
		return err
	}

	if cc.Renderer.Mode() != output.ModeJSON {
		cc.Renderer.Println(graphSummary(doc.Graph))
	}
	return nil
}

// graphSummary describes the shape of the whole document graph.
func graphSummary(g *dag.Graph) string {
	return fmt.Sprintf("%d nodes, %d edges. Roots: %s. Leaves: %s.",
		g.NodeCount(), g.EdgeCount(),
		strings.Join(g.GetRoots(), ", "), strings.Join(g.GetLeaves(), ", "))
}
