package core

import "context"

// Runtime is the capability surface of the host runtime consumed by the lineage annotator.
// Implementations may block (registry lookups, value loading); callers pass a context.
type Runtime interface {
	// ResolveModuleType returns the registry metadata for a module type.
	ResolveModuleType(ctx context.Context, name string) (*ModuleTypeInfo, error)
	// GetValue returns the value with the given id.
	GetValue(ctx context.Context, id string) (*Value, error)
	// RenderValue renders a value to the target format (e.g. RenderTargetString).
	RenderValue(ctx context.Context, v *Value, targetFormat string) (*RenderResult, error)
}
