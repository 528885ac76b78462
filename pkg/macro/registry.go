package macro

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry maps macro identifiers to descriptors. Identifiers are
// case-sensitive. A Registry may be shared by concurrent transformation
// runs.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

// Register adds d. It fails on an empty identifier, a missing
// implementation, or an identifier that is already registered.
func (r *Registry) Register(d Descriptor) error {
	if d.ID == "" {
		return errors.New("macro id is required")
	}
	if d.Macro == nil {
		return fmt.Errorf("macro %s: implementation is required", d.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[d.ID]; exists {
		return fmt.Errorf("macro %s is already registered", d.ID)
	}
	r.descriptors[d.ID] = d
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Unregister removes id. Removing an unknown id is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.descriptors, id)
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[id]
	return d, ok
}

// Resolve is Lookup with an *UnknownMacroError for a miss.
func (r *Registry) Resolve(id string) (Descriptor, error) {
	d, ok := r.Lookup(id)
	if !ok {
		return Descriptor{}, &UnknownMacroError{ID: id}
	}
	return d, nil
}

// Descriptors returns every registered descriptor sorted by identifier.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	out := make([]Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, d)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
