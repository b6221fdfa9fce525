package effectchain

import (
	"errors"
	"fmt"
	"slices"
)

// Factory builds one Runtime instance for a node.
type Factory func(ctx Context) (Runtime, error)

// Registry maps node type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateType = errors.New("duplicate node type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given node type.
func (r *Registry) Register(nodeType string, factory Factory) error {
	if nodeType == "" {
		return errors.New("empty node type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if isStructuralNodeType(nodeType) {
		return fmt.Errorf("reserved node type: %s", nodeType)
	}

	if _, exists := r.factories[nodeType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateType, nodeType)
	}

	r.factories[nodeType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(nodeType string, factory Factory) {
	if err := r.Register(nodeType, factory); err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given node type, or nil.
func (r *Registry) Lookup(nodeType string) Factory {
	return r.factories[nodeType]
}

// Types returns the registered node types in sorted order.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}

	slices.Sort(out)

	return out
}
