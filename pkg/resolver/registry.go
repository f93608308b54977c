package resolver

// Registry is an immutable catalog of discovered components keyed by id.
// It is built once per resolution session and passed by reference into
// every query; there is no process-wide registry instance.
type Registry struct {
	// components maps component IDs to their components.
	components map[string]*Component

	// order preserves discovery order for deterministic iteration.
	order []string
}

// BuildRegistry builds a registry from a flat component list, as produced
// by the discovery collaborator. It fails with a DUPLICATE_ID error when
// two components declare the same id. No I/O is performed here.
func BuildRegistry(components []Component) (*Registry, error) {
	r := &Registry{
		components: make(map[string]*Component, len(components)),
		order:      make([]string, 0, len(components)),
	}

	for i := range components {
		c := &components[i]
		if prev, exists := r.components[c.ID]; exists {
			return nil, NewDuplicateIDError(c.ID, prev.SourcePath, c.SourcePath)
		}
		r.components[c.ID] = c
		r.order = append(r.order, c.ID)
	}

	return r, nil
}

// Get returns the component with the given id.
func (r *Registry) Get(id string) (*Component, bool) {
	c, ok := r.components[id]
	return c, ok
}

// Has reports whether id is an internal component. Dependency tokens for
// which Has is false are external (third-party tool names).
func (r *Registry) Has(id string) bool {
	_, ok := r.components[id]
	return ok
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.components)
}

// IDs returns all component ids in discovery order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// ByCategory returns the ids of all components in the given category,
// in discovery order.
func (r *Registry) ByCategory(cat Category) []string {
	var ids []string
	for _, id := range r.order {
		if r.components[id].Category == cat {
			ids = append(ids, id)
		}
	}
	return ids
}
