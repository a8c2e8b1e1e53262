// Package runtime provides a local, in-memory host runtime: it resolves module
// types from a registry, stores and renders values, and runs modules while
// recording their lineage.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapviz/internal/module"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

// DefaultPreviewRows is the number of table rows rendered in a preview.
const DefaultPreviewRows = 10

// Runtime is an in-memory implementation of core.Runtime.
type Runtime struct {
	registry    *module.Registry
	logger      *slog.Logger
	previewRows int

	mu     sync.RWMutex
	values map[string]*core.Value
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the structured logger (nil uses a discard logger).
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithPreviewRows limits the rows rendered for table values (0 or less renders all rows).
func WithPreviewRows(n int) Option {
	return func(r *Runtime) {
		r.previewRows = n
	}
}

// New creates a runtime resolving module types from reg.
func New(reg *module.Registry, opts ...Option) *Runtime {
	r := &Runtime{
		registry:    reg,
		previewRows: DefaultPreviewRows,
		values:      make(map[string]*core.Value),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

var _ core.Runtime = (*Runtime)(nil)

// ResolveModuleType implements core.Runtime.
func (r *Runtime) ResolveModuleType(_ context.Context, name string) (*core.ModuleTypeInfo, error) {
	r.logger.Debug("resolving module type", "name", name)
	return r.registry.Info(name)
}

// AddValue stores data under a new random id and returns the value.
func (r *Runtime) AddValue(dataType string, data any) *core.Value {
	v := &core.Value{ID: uuid.NewString(), DataType: dataType, Data: data}

	r.mu.Lock()
	r.values[v.ID] = v
	r.mu.Unlock()

	r.logger.Debug("stored value", "id", v.ID, "data_type", dataType)
	return v
}

// PutValue stores v under its own id, which must be a UUID.
func (r *Runtime) PutValue(v *core.Value) error {
	id, err := parseValueID(v.ID)
	if err != nil {
		return err
	}
	v.ID = id

	r.mu.Lock()
	r.values[id] = v
	r.mu.Unlock()

	r.logger.Debug("stored value", "id", id, "data_type", v.DataType)
	return nil
}

// GetValue implements core.Runtime.
func (r *Runtime) GetValue(_ context.Context, id string) (*core.Value, error) {
	key, err := parseValueID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	v, ok := r.values[key]
	r.mu.RUnlock()
	if !ok {
		return nil, &core.ValueNotFoundError{ID: id}
	}
	return v, nil
}

// ValueCount returns the number of stored values.
func (r *Runtime) ValueCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// parseValueID normalizes a value id to the canonical UUID form.
func parseValueID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", &core.InvalidInputError{
			Field:   "value id",
			Value:   id,
			Message: fmt.Sprintf("not a UUID: %v", err),
		}
	}
	return u.String(), nil
}
