// Package config provides configuration management for the LeapViz CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Table is the table the visualization query aggregates.
	Table string `koanf:"table"`
	// DateColumn is the column holding the row date.
	DateColumn string `koanf:"date_column"`
	// ValuePrefixLen is the prefix length stripped from value node ids.
	ValuePrefixLen int `koanf:"value_prefix_len"`
	// RenderTarget is the format value previews are rendered to.
	RenderTarget string `koanf:"render_target"`
	// PreviewRows limits the rows rendered for table previews.
	PreviewRows int `koanf:"preview_rows"`

	Verbose      bool   `koanf:"verbose"`
	LogLevel     string `koanf:"log_level"`
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultTable          = "data"
	DefaultDateColumn     = "date"
	DefaultValuePrefixLen = 6
	DefaultRenderTarget   = "string"
	DefaultPreviewRows    = 10
	DefaultLogLevel       = "warn"
	DefaultOutput         = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Default returns a Config holding the default values.
func Default() *Config {
	return &Config{
		Table:          DefaultTable,
		DateColumn:     DefaultDateColumn,
		ValuePrefixLen: DefaultValuePrefixLen,
		RenderTarget:   DefaultRenderTarget,
		PreviewRows:    DefaultPreviewRows,
		LogLevel:       DefaultLogLevel,
		OutputFormat:   DefaultOutput,
	}
}

// defaultsMap returns the defaults keyed like the koanf tags.
func defaultsMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"table":            d.Table,
		"date_column":      d.DateColumn,
		"value_prefix_len": d.ValuePrefixLen,
		"render_target":    d.RenderTarget,
		"preview_rows":     d.PreviewRows,
		"verbose":          d.Verbose,
		"log_level":        d.LogLevel,
		"output":           d.OutputFormat,
	}
}
