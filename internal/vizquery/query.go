package vizquery

import (
	"strings"

	"github.com/leapstack-labs/leapviz/pkg/core"
)

// Default names of the implicit dataset.
const (
	DefaultTable      = "data"
	DefaultDateColumn = "date"
)

// Output column aliases of the produced query.
const (
	aliasDate  = "date"
	aliasGroup = "publication_name"
	aliasCount = "count"
)

// Options configures the dataset a Synthesizer aggregates over.
type Options struct {
	// Table is the table to aggregate (default "data").
	Table string
	// DateColumn is the column holding the row date (default "date").
	DateColumn string
}

// Synthesizer produces aggregation queries for a fixed table and date column.
type Synthesizer struct {
	table      string
	dateColumn string
}

// New creates a Synthesizer. Empty option fields fall back to the defaults.
func New(opts Options) *Synthesizer {
	s := &Synthesizer{table: opts.Table, dateColumn: opts.DateColumn}
	if s.table == "" {
		s.table = DefaultTable
	}
	if s.dateColumn == "" {
		s.dateColumn = DefaultDateColumn
	}
	return s
}

var defaultSynthesizer = New(Options{})

// Synthesize builds the query for distribution and column over the default dataset.
func Synthesize(distribution, column string) (string, error) {
	return defaultSynthesizer.Synthesize(distribution, column)
}

// Synthesize builds the aggregation query for distribution ("day", "month"
// or "year") grouped by column. Any other distribution, or an empty column,
// returns a *core.InvalidInputError.
func (s *Synthesizer) Synthesize(distribution, column string) (string, error) {
	bucket, err := core.ParseTimeBucket(distribution)
	if err != nil {
		return "", err
	}
	return s.SynthesizeBucket(bucket, column)
}

// SynthesizeBucket is Synthesize for an already parsed bucket.
func (s *Synthesizer) SynthesizeBucket(bucket core.TimeBucket, column string) (string, error) {
	if column == "" {
		return "", &core.InvalidInputError{Field: "column", Message: "must not be empty"}
	}

	variant, ok := variants[bucket]
	if !ok {
		return "", &core.InvalidInputError{
			Field:   "distribution",
			Value:   string(bucket),
			Message: "must be one of 'day', 'month' or 'year'",
		}
	}

	frag := variant.fragment()
	return frag.render(s.table, s.dateColumn, column), nil
}

// =============================================================================
// Fragments
// =============================================================================

// datePart is one extracted component of the row date.
type datePart struct {
	fn    string // DuckDB extraction function, e.g. YEAR
	alias string // projected name, empty when the part is only grouped on
}

// queryFragment is the structured form of a query before it is rendered to text.
type queryFragment struct {
	// parts are grouped on in order; those with an alias are also projected
	// by the inner query.
	parts []datePart
	// dateExpr rebuilds a date string from the projected parts.
	dateExpr string
	// format is the strptime format matching dateExpr.
	format string
}

// render writes the two-level aggregation. The grouping column is the only
// caller-supplied text and is inserted as-is.
func (f queryFragment) render(table, dateColumn, column string) string {
	var projected, grouped []string
	for _, p := range f.parts {
		expr := p.fn + "(" + dateColumn + ")"
		if p.alias != "" {
			projected = append(projected, expr+" as "+p.alias)
		}
		grouped = append(grouped, expr)
	}

	var inner strings.Builder
	inner.WriteString("SELECT ")
	inner.WriteString(strings.Join(projected, ", "))
	inner.WriteString(", " + column + ", count(*) as " + aliasCount)
	inner.WriteString(" FROM " + table)
	inner.WriteString(" GROUP BY " + column + ", " + strings.Join(grouped, ", "))

	var outer strings.Builder
	outer.WriteString("SELECT strptime(" + f.dateExpr + ", '" + f.format + "') as " + aliasDate)
	outer.WriteString(", " + column + " as " + aliasGroup)
	outer.WriteString(", " + aliasCount)
	outer.WriteString(" FROM (" + inner.String() + ")")
	return outer.String()
}

// =============================================================================
// Variants
// =============================================================================

// bucketVariant produces the fragment for one time bucket.
type bucketVariant interface {
	fragment() queryFragment
}

var variants = map[core.TimeBucket]bucketVariant{
	core.BucketDay:   dayVariant{},
	core.BucketMonth: monthVariant{},
	core.BucketYear:  yearVariant{},
}

var (
	yearPart  = datePart{fn: "YEAR", alias: "year"}
	monthPart = datePart{fn: "MONTH", alias: "month"}
	dayPart   = datePart{fn: "DAY"}
)

type yearVariant struct{}

func (yearVariant) fragment() queryFragment {
	return queryFragment{
		parts:    []datePart{yearPart},
		dateExpr: "year",
		format:   "%Y",
	}
}

type monthVariant struct{}

func (monthVariant) fragment() queryFragment {
	return queryFragment{
		parts:    []datePart{yearPart, monthPart},
		dateExpr: "concat(month, '/', year)",
		format:   "%m/%Y",
	}
}

// dayVariant groups by the full date but reports every group on the first of
// its month: the day is grouped on, never projected, and the rebuilt date
// pins it to 01.
type dayVariant struct{}

func (dayVariant) fragment() queryFragment {
	return queryFragment{
		parts:    []datePart{yearPart, monthPart, dayPart},
		dateExpr: "concat('01/', month, '/', year)",
		format:   "%d/%m/%Y",
	}
}
