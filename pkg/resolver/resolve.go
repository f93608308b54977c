package resolver

import "sort"

// Node colors for the cycle-detection traversal.
type color int

const (
	colorWhite color = iota // not yet visited
	colorGray               // on the current traversal stack
	colorBlack              // fully explored
)

// DetectCycle performs a depth-first traversal over the subgraph reachable
// from ids and returns the ordered member list of the first cycle found,
// with the entry node repeated at the end. It returns nil when the
// reachable subgraph is acyclic. Components outside the reachable set are
// never inspected, so a cycle elsewhere in the registry does not affect
// unrelated selections.
func DetectCycle(ids []string, g *Graph) ([]string, error) {
	if err := validateSelection(ids, g); err != nil {
		return nil, err
	}

	colors := make(map[string]color, len(ids))
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		colors[id] = colorGray
		path = append(path, id)

		for _, dep := range g.deps[id] {
			switch colors[dep] {
			case colorWhite:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			case colorGray:
				// Back edge: the cycle is the path suffix starting
				// at the gray node, closed with the node itself.
				for i, member := range path {
					if member == dep {
						return append(copyIDs(path[i:]), dep)
					}
				}
			}
		}

		colors[id] = colorBlack
		path = path[:len(path)-1]
		return nil
	}

	for _, id := range ids {
		if colors[id] == colorWhite {
			if cycle := visit(id); cycle != nil {
				return cycle, nil
			}
		}
	}

	return nil, nil
}

// ResolveOrder computes a linear installation order over the selection and
// its transitive dependencies: every dependency precedes its dependents,
// each id appears exactly once. Ties between nodes whose dependencies are
// all emitted are broken by the selection position that first pulled the
// node into the closure, then by lexical id order, making the output fully
// deterministic for identical inputs.
//
// It fails with a CIRCULAR_DEPENDENCY error when a cycle is reachable from
// the selection and with an UNKNOWN_COMPONENT error when an id is not in
// the registry. No partial order is returned on failure.
func ResolveOrder(selected []string, g *Graph) ([]string, error) {
	cycle, err := DetectCycle(selected, g)
	if err != nil {
		return nil, err
	}
	if cycle != nil {
		return nil, NewCircularDependencyError(cycle)
	}

	rank := closureRanks(selected, g)

	// In-degree within the induced subgraph. The closure is closed under
	// dependency, so every dependency edge stays inside it.
	inDegree := make(map[string]int, len(rank))
	for id := range rank {
		inDegree[id] = len(g.deps[id])
	}

	ready := make([]string, 0, len(rank))
	for id, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, len(rank))
	for len(ready) > 0 {
		// Pick the ready node with the lowest rank, lexical on ties.
		// Selections are tens of nodes, so a linear scan is fine.
		best := 0
		for i := 1; i < len(ready); i++ {
			if rankLess(ready[i], ready[best], rank) {
				best = i
			}
		}
		id := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		order = append(order, id)

		for _, dependent := range g.dependents[id] {
			if _, member := inDegree[dependent]; !member {
				continue
			}
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	return order, nil
}

// ResolveAll computes the transitive closure of the selection: the selected
// ids plus every internal component reachable by following dependency
// edges. External dependency names are never included. The operation is
// idempotent: resolving a closure returns the same set.
func ResolveAll(selected []string, g *Graph) (map[string]bool, error) {
	cycle, err := DetectCycle(selected, g)
	if err != nil {
		return nil, err
	}
	if cycle != nil {
		return nil, NewCircularDependencyError(cycle)
	}

	closure := make(map[string]bool, len(selected))
	for id := range closureRanks(selected, g) {
		closure[id] = true
	}
	return closure, nil
}

// MissingDependencies returns the internal dependencies required by the
// selection but absent from it: closure(selected) minus selected. The
// result is empty when the selection is already closed under dependency.
func MissingDependencies(selected []string, g *Graph) (map[string]bool, error) {
	closure, err := ResolveAll(selected, g)
	if err != nil {
		return nil, err
	}

	for _, id := range selected {
		delete(closure, id)
	}
	return closure, nil
}

// SortedIDs returns the members of an id set in lexical order, for
// deterministic display and testing.
func SortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// closureRanks walks the closure of the selection and records, for each
// member, the position of the earliest selection entry that reaches it.
// The caller must have already ruled out cycles and unknown ids.
func closureRanks(selected []string, g *Graph) map[string]int {
	rank := make(map[string]int, len(selected))

	var visit func(id string, r int)
	visit = func(id string, r int) {
		if prev, seen := rank[id]; seen && prev <= r {
			return
		}
		rank[id] = r
		for _, dep := range g.deps[id] {
			visit(dep, r)
		}
	}

	for i, id := range selected {
		visit(id, i)
	}

	return rank
}

// rankLess orders ids by closure rank, then lexically.
func rankLess(a, b string, rank map[string]int) bool {
	if rank[a] != rank[b] {
		return rank[a] < rank[b]
	}
	return a < b
}

// validateSelection rejects ids not present in the registry. Silently
// dropping a requested id would produce a misleadingly complete order.
func validateSelection(ids []string, g *Graph) error {
	for _, id := range ids {
		if !g.Has(id) {
			return NewUnknownComponentError(id)
		}
	}
	return nil
}
