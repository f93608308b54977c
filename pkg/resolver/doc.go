// Package resolver implements the component dependency resolution engine.
//
// # Overview
//
// A toolkit source tree contains installable components (commands, hooks,
// subagents) that declare prerequisites explicitly in metadata and
// implicitly through body cross-references. The resolver turns a discovered
// component list into answers to three questions: in which order must a
// selection be installed, what does a selection transitively require, and
// what did the user forget to select.
//
// The resolution pipeline is:
//
//  1. BuildRegistry - index components by id, rejecting duplicates
//  2. BuildGraph - derive internal dependency edges, set aside external tokens
//  3. DetectCycle - refuse cyclic subgraphs before any ordering is attempted
//  4. ResolveOrder / ResolveAll / MissingDependencies - pure queries
//
// # Internal vs. external dependencies
//
// Dependency tokens share one textual namespace: "git-hook-utils" may be a
// component while "jq" is a third-party binary. Classification happens in
// exactly one place, at graph construction: a token that matches a registry
// id becomes an edge, everything else is recorded as external and excluded
// from traversal. External tokens stay reachable for diagnostics through
// Graph.ExternalDependenciesOf.
//
// # Determinism
//
// Graph adjacency preserves component declaration order, and ResolveOrder
// breaks ties by selection position and then lexical id order, so identical
// inputs always produce identical output.
//
// # Statelessness
//
// Registry and Graph are built once per session, never mutated, and passed
// explicitly into every query. There are no package-level caches, so
// independent resolution sessions may run concurrently.
//
// # Errors
//
// All failures are *ResolveError values carrying one of three codes:
//
//   - DUPLICATE_ID: two components share an id at registry build
//   - CIRCULAR_DEPENDENCY: a cycle is reachable from the selection
//   - UNKNOWN_COMPONENT: a requested id is not in the registry
//
// A cycle is a hard failure for the affected selection; selections that do
// not reach the cycle resolve normally against the same graph.
package resolver
