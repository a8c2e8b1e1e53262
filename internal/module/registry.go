package module

import (
	"fmt"
	"sort"
	"sync"

	"github.com/leapstack-labs/leapviz/pkg/core"
)

// Registry maps module type names to modules.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// DuplicateModuleError is returned when a module type name is registered twice.
type DuplicateModuleError struct {
	Name string
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module type %q is already registered", e.Name)
}

// Register adds m under its type name.
func (r *Registry) Register(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.TypeName()
	if _, exists := r.modules[name]; exists {
		return &DuplicateModuleError{Name: name}
	}
	r.modules[name] = m
	return nil
}

// Get returns the module registered under name.
func (r *Registry) Get(name string) (Module, error) {
	r.mu.RLock()
	m, ok := r.modules[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &core.UnknownModuleTypeError{Name: name, Available: r.Names()}
	}
	return m, nil
}

// Info returns the metadata record of the module registered under name.
func (r *Registry) Info(name string) (*core.ModuleTypeInfo, error) {
	m, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return Describe(m), nil
}

// Names returns all registered module type names (sorted).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
