// Package module defines processing modules and the registry that resolves
// module type names to implementations and metadata.
package module

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapviz/pkg/core"
)

// Module is a unit of processing with declared inputs and outputs.
type Module interface {
	// TypeName is the registry name of the module type.
	TypeName() string
	// Doc describes what the module does.
	Doc() string
	// InputsSchema declares the inputs, in display order.
	InputsSchema() []core.FieldSchema
	// OutputsSchema declares the outputs, in display order.
	OutputsSchema() []core.FieldSchema
	// Process reads inputs and sets outputs.
	Process(ctx context.Context, inputs, outputs ValueMap) error
}

// ValueMap holds named module inputs or outputs.
type ValueMap map[string]any

// GetString returns the string stored under key.
// Missing keys and non-string values are reported as invalid input.
func (m ValueMap) GetString(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", &core.InvalidInputError{Field: key, Message: "missing required value"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &core.InvalidInputError{Field: key, Message: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, nil
}

// Set stores v under key.
func (m ValueMap) Set(key string, v any) {
	m[key] = v
}

// ProcessingError wraps a failure raised while a module processes its inputs.
type ProcessingError struct {
	ModuleType string
	Err        error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("module %s: processing failed: %v", e.ModuleType, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Describe builds the registry metadata record for m.
func Describe(m Module) *core.ModuleTypeInfo {
	return &core.ModuleTypeInfo{
		TypeName:      m.TypeName(),
		Doc:           m.Doc(),
		InputsSchema:  append([]core.FieldSchema(nil), m.InputsSchema()...),
		OutputsSchema: append([]core.FieldSchema(nil), m.OutputsSchema()...),
	}
}

// ValidateInputs checks that every required input declared by m is present.
func ValidateInputs(m Module, inputs ValueMap) error {
	for _, f := range m.InputsSchema() {
		if f.Optional {
			continue
		}
		if _, ok := inputs[f.Name]; !ok {
			return &core.InvalidInputError{Field: f.Name, Message: "missing required value"}
		}
	}
	return nil
}
