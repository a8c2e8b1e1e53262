package core

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrUnknownNodeType         = errors.New("unknown node type")
	ErrUnknownModuleType       = errors.New("unknown module type")
	ErrValueNotFound           = errors.New("value not found")
	ErrUnsupportedRenderTarget = errors.New("unsupported render target")
)

// InvalidInputError is returned when a caller supplies an input outside the contract.
type InvalidInputError struct {
	Field   string
	Value   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnknownNodeTypeError is returned for lineage nodes that are neither operations nor values.
type UnknownNodeTypeError struct {
	NodeID   string
	NodeType string
}

func (e *UnknownNodeTypeError) Error() string {
	return fmt.Sprintf("node %q has unknown node type %q (expected %q or %q)",
		e.NodeID, e.NodeType, NodeTypeOperation, NodeTypeValue)
}

// Is reports whether target is ErrUnknownNodeType.
func (e *UnknownNodeTypeError) Is(target error) bool {
	return target == ErrUnknownNodeType
}

// UnknownModuleTypeError is returned when a module type is not registered.
type UnknownModuleTypeError struct {
	Name      string
	Available []string
}

func (e *UnknownModuleTypeError) Error() string {
	return fmt.Sprintf("unknown module type %q\nAvailable module types: %v", e.Name, e.Available)
}

// Is reports whether target is ErrUnknownModuleType.
func (e *UnknownModuleTypeError) Is(target error) bool {
	return target == ErrUnknownModuleType
}

// ValueNotFoundError is returned when a value id is not known to the runtime.
type ValueNotFoundError struct {
	ID string
}

func (e *ValueNotFoundError) Error() string {
	return fmt.Sprintf("value %q not found", e.ID)
}

// Is reports whether target is ErrValueNotFound.
func (e *ValueNotFoundError) Is(target error) bool {
	return target == ErrValueNotFound
}

// UnsupportedRenderTargetError is returned when a value cannot be rendered to a format.
type UnsupportedRenderTargetError struct {
	Target   string
	DataType string
}

func (e *UnsupportedRenderTargetError) Error() string {
	return fmt.Sprintf("cannot render %s value to %q", e.DataType, e.Target)
}

// Is reports whether target is ErrUnsupportedRenderTarget.
func (e *UnsupportedRenderTargetError) Is(target error) bool {
	return target == ErrUnsupportedRenderTarget
}
