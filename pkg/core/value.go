package core

// Render targets understood by runtimes.
const (
	RenderTargetString   = "string"
	RenderTargetMarkdown = "markdown"
	RenderTargetJSON     = "json"
)

// Value is a handle to a piece of data held by the host runtime.
type Value struct {
	// ID is the runtime-wide identifier of the value.
	ID string `json:"id"`
	// DataType names the host data type (string, integer, table, ...).
	DataType string `json:"data_type"`
	// Data is the payload.
	Data any `json:"data"`
}

// RenderResult is the output of rendering a value to a target format.
type RenderResult struct {
	TargetFormat string `json:"target_format"`
	Rendered     string `json:"rendered"`
}

// Table is tabular value data: named columns and positional rows.
type Table struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// DataTypeTable is the data type of values holding a Table.
const DataTypeTable = "table"
