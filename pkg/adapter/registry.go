package adapter

import "sort"

// Registry holds named adapters. The calling service resolves the adapter
// for an upload by tool name.
type Registry struct {
	items map[string]*Adapter
}

// NewRegistry constructs a registry with the provided adapters.
func NewRegistry(items ...*Adapter) *Registry {
	r := &Registry{items: make(map[string]*Adapter, len(items))}
	for _, a := range items {
		r.Register(a)
	}
	return r
}

// Register adds or replaces an adapter under its name.
func (r *Registry) Register(a *Adapter) {
	r.items[a.Name] = a
}

// Get returns the adapter registered under name, or nil.
func (r *Registry) Get(name string) *Adapter {
	if r == nil {
		return nil
	}
	return r.items[name]
}

// Names returns the registered adapter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
