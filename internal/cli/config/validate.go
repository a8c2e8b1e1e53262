package config

import (
	"fmt"
	"log/slog"
	"strings"
)

var validOutputs = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

var validRenderTargets = map[string]bool{
	"string":   true,
	"markdown": true,
	"json":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Table == "" {
		return fmt.Errorf("table is required")
	}
	if c.DateColumn == "" {
		return fmt.Errorf("date_column is required")
	}
	if c.ValuePrefixLen < 0 {
		return fmt.Errorf("value_prefix_len must not be negative, got %d", c.ValuePrefixLen)
	}
	if !validRenderTargets[c.RenderTarget] {
		return fmt.Errorf("unknown render_target %q\nHint: use one of string, markdown, json", c.RenderTarget)
	}
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("unknown output format %q\nHint: use one of auto, text, markdown, json", c.OutputFormat)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log_level %q\nHint: use one of debug, info, warn, error", s)
	}
	return level, nil
}
