package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapviz/internal/cli/output"
	"github.com/leapstack-labs/leapviz/internal/vizquery"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Distribution string
	Column       string
	Run          bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Build a visualization query",
		Long: `Build the SQL query counting rows per time bucket for a column.

The query groups the configured table by year, month or day of its date
column. With --run, the query is built by running the viz_data_query module
through the local runtime and the job's annotated lineage is printed too.`,
		Example: `  # Count authors per day
  leapviz query --distribution day --column author

  # Use another table and date column
  leapviz query -d month -c publisher --table books --date-column published

  # Run the module and show its lineage
  leapviz query -d year -c author --run --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Distribution, "distribution", "d", "", "Time bucket (year|month|day)")
	cmd.Flags().StringVarP(&opts.Column, "column", "c", "", "Column to count")
	cmd.Flags().BoolVar(&opts.Run, "run", false, "Run the module and print its lineage")
	_ = cmd.MarkFlagRequired("distribution")
	_ = cmd.MarkFlagRequired("column")

	_ = cmd.RegisterFlagCompletionFunc("distribution", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, b := range core.AllTimeBuckets() {
			names = append(names, b.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

type queryResult struct {
	Query   string              `json:"query"`
	Lineage core.AugmentedGraph `json:"lineage,omitempty"`
}

func runQuery(cmd *cobra.Command, opts *QueryOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cc.Renderer

	if !opts.Run {
		q, err := vizquery.New(vizquery.Options{
			Table:      cc.Cfg.Table,
			DateColumn: cc.Cfg.DateColumn,
		}).Synthesize(opts.Distribution, opts.Column)
		if err != nil {
			return err
		}
		if r.Mode() == output.ModeJSON {
			return r.JSON(queryResult{Query: q})
		}
		r.Code("sql", q)
		return nil
	}

	job, err := cc.Runtime.Run(cmd.Context(), vizquery.ModuleTypeName, map[string]any{
		vizquery.InputDistribution: opts.Distribution,
		vizquery.InputColumn:       opts.Column,
	})
	if err != nil {
		return err
	}
	cc.Logger.Debug("module job finished", "job_id", job.ID)

	data, _ := job.Output(vizquery.OutputQuery)
	q, _ := data.(string)

	graph, err := cc.Augment(cmd, job)
	if err != nil {
		return err
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(queryResult{Query: q, Lineage: graph})
	}

	r.Heading("Query")
	r.Code("sql", q)
	r.Println()
	return renderAugmented(r, "Lineage", graph)
}
