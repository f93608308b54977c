package resolver

import (
	"fmt"
	"strings"
)

// Graph is a read-only adjacency view over a registry. For each component
// it records the effective dependencies (declared plus referenced) that
// resolve to registry members, the reverse edges, and the external tokens
// that were excluded from traversal.
type Graph struct {
	// registry is the catalog the graph was derived from.
	registry *Registry

	// deps maps component IDs to their internal dependencies,
	// in declaration order with duplicates removed.
	deps map[string][]string

	// dependents maps component IDs to the components depending on them.
	dependents map[string][]string

	// external maps component IDs to dependency tokens that did not
	// resolve to a registry member. Kept for diagnostics only; never
	// traversed.
	external map[string][]string
}

// BuildGraph derives the dependency graph from a registry. A dependency
// token becomes a graph edge only when it names a registry member; all
// other tokens are recorded as external. The graph is never mutated after
// construction.
func BuildGraph(registry *Registry) *Graph {
	g := &Graph{
		registry:   registry,
		deps:       make(map[string][]string, registry.Len()),
		dependents: make(map[string][]string, registry.Len()),
		external:   make(map[string][]string),
	}

	for _, id := range registry.order {
		c := registry.components[id]
		for _, dep := range c.effectiveDependencies() {
			if !registry.Has(dep) {
				g.external[id] = append(g.external[id], dep)
				continue
			}
			g.deps[id] = append(g.deps[id], dep)
			g.dependents[dep] = append(g.dependents[dep], id)
		}
	}

	return g
}

// Registry returns the registry this graph was built from.
func (g *Graph) Registry() *Registry {
	return g.registry
}

// Has reports whether id is a node in the graph.
func (g *Graph) Has(id string) bool {
	return g.registry.Has(id)
}

// DependenciesOf returns the internal dependencies of id, preserving the
// component's declaration order. The returned slice is a copy.
func (g *Graph) DependenciesOf(id string) []string {
	return copyIDs(g.deps[id])
}

// DependentsOf returns the components that depend on id. The returned
// slice is a copy.
func (g *Graph) DependentsOf(id string) []string {
	return copyIDs(g.dependents[id])
}

// ExternalDependenciesOf returns the dependency tokens of id that did not
// resolve to a registry member, e.g. third-party tool names.
func (g *Graph) ExternalDependenciesOf(id string) []string {
	return copyIDs(g.external[id])
}

// ToDOT generates a DOT representation of the subgraph induced by ids
// (the whole graph when ids is empty) for rendering with Graphviz.
func (g *Graph) ToDOT(ids []string) string {
	if len(ids) == 0 {
		ids = g.registry.IDs()
	}

	member := make(map[string]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}

	var sb strings.Builder
	sb.WriteString("digraph components {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, id := range ids {
		c, ok := g.registry.Get(id)
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %q [label=\"%s\\n%s\", fillcolor=%q, style=\"filled,rounded\"];\n",
			id, id, c.Category, categoryColor(c.Category)))
	}
	sb.WriteString("\n")

	for _, id := range ids {
		for _, dep := range g.deps[id] {
			if member[dep] {
				sb.WriteString(fmt.Sprintf("  %q -> %q;\n", id, dep))
			}
		}
		for _, ext := range g.external[id] {
			sb.WriteString(fmt.Sprintf("  %q -> %q [style=dashed, color=gray];\n", id, ext))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// categoryColor returns a fill color for visualizing component categories.
func categoryColor(cat Category) string {
	switch cat {
	case CategoryCommand:
		return "lightblue"
	case CategoryHook:
		return "lightgreen"
	case CategorySubagent:
		return "lightyellow"
	default:
		return "white"
	}
}

func copyIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
