// Package vizquery builds the time-bucketed aggregation query behind the
// corpus distribution visualization.
//
// The produced query groups the rows of a table by a time bucket (day, month
// or year) and a grouping column, counts each group, and reconstructs a single
// parseable date column so the result can be plotted directly:
//
//	q, err := vizquery.Synthesize("month", "publication")
//	// SELECT strptime(concat(month, '/', year), '%m/%Y') as date,
//	//        publication as publication_name, count FROM (...)
//
// The grouping column is interpolated verbatim; callers must pass a valid
// identifier. The query is never executed or validated here.
//
// The package also exposes the synthesizer as the "viz_data_query" module
// (see Module) so it can be registered with a module registry.
package vizquery
