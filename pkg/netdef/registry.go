package netdef

import "fmt"

// Registry is an ordered collection of layers. Iteration order is the
// order layers were added, which fixes the declared index of every
// layer in the layout tree.
type Registry struct {
	layers []*Layer
	byName map[string]*Layer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Layer)}
}

// Add appends a layer. Duplicate names are rejected.
func (r *Registry) Add(layer *Layer) error {
	if layer.Name == "" {
		return fmt.Errorf("layer name must not be empty")
	}
	if _, exists := r.byName[layer.Name]; exists {
		return fmt.Errorf("duplicate layer name %q", layer.Name)
	}
	r.layers = append(r.layers, layer)
	r.byName[layer.Name] = layer
	return nil
}

// Get returns the layer registered under name.
func (r *Registry) Get(name string) (*Layer, bool) {
	l, ok := r.byName[name]
	return l, ok
}

// Layers returns the layers in registration order.
func (r *Registry) Layers() []*Layer {
	return r.layers
}

// Len returns the number of registered layers.
func (r *Registry) Len() int { return len(r.layers) }
