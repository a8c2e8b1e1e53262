package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapviz/internal/cli/config"
	"github.com/leapstack-labs/leapviz/internal/cli/output"
	"github.com/leapstack-labs/leapviz/internal/lineage"
	"github.com/leapstack-labs/leapviz/internal/module"
	"github.com/leapstack-labs/leapviz/internal/runtime"
	"github.com/leapstack-labs/leapviz/internal/vizquery"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Registry *module.Registry
	Runtime  *runtime.Runtime
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a module registry, a local
// runtime and a renderer built from the current configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	reg, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}

	rt := runtime.New(reg,
		runtime.WithLogger(logger),
		runtime.WithPreviewRows(cfg.PreviewRows),
	)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Registry: reg,
		Runtime:  rt,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), output.Mode(cfg.OutputFormat)),
	}, nil
}

// Augment annotates the lineage of item using the command's runtime and the
// configured prefix length and render target.
func (c *CommandContext) Augment(cmd *cobra.Command, item core.LineageBearer) (core.AugmentedGraph, error) {
	return lineage.Augment(cmd.Context(), item, c.Runtime,
		lineage.WithValuePrefixLen(c.Cfg.ValuePrefixLen),
		lineage.WithRenderTarget(c.Cfg.RenderTarget),
		lineage.WithLogger(c.Logger),
	)
}

func newRegistry(cfg *config.Config) (*module.Registry, error) {
	reg := module.NewRegistry()
	if err := vizquery.Register(reg, vizquery.Options{
		Table:      cfg.Table,
		DateColumn: cfg.DateColumn,
	}); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	return reg, nil
}

// renderAugmented writes an augmented lineage graph in the renderer's mode.
func renderAugmented(r *output.Renderer, title string, g core.AugmentedGraph) error {
	if r.Mode() == output.ModeJSON {
		return r.JSON(g)
	}

	markdown := r.Mode() == output.ModeMarkdown
	rows := make([][]any, 0, g.Len())
	for i, n := range g.Ordered() {
		rows = append(rows, []any{
			i,
			n.ID,
			n.Desc.NodeType(),
			strings.Join(n.ParentIDs, ", "),
			cell(infoSummary(n.Info), markdown),
		})
	}

	r.Heading(title)
	r.Table([]string{"#", "Node", "Type", "Parents", "Info"}, rows)
	return nil
}

func infoSummary(info core.NodeInfo) string {
	if info.ModuleTypeInfo != nil {
		return "module " + info.TypeName
	}
	return info.Preview
}

// cell flattens multi-line text for markdown table cells.
func cell(s string, markdown bool) string {
	if markdown {
		return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "<br>")
	}
	return s
}
