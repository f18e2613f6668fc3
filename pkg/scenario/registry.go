package scenario

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available scenarios by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]func() Scenario
}

// NewRegistry creates an empty scenario registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]func() Scenario),
	}
}

// Register adds a scenario factory to the registry.
func (r *Registry) Register(name string, factory func() Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("scenario %s already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Get returns a new instance of the named scenario.
func (r *Registry) Get(name string) (Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("scenario %s not found", name)
	}
	return factory(), nil
}

// List returns all registered scenario names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global scenario registry.
var DefaultRegistry = NewRegistry()
