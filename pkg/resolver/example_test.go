package resolver_test

import (
	"fmt"
	"log"

	"github.com/agentkit/agentkit/pkg/resolver"
)

// Example demonstrates resolving an installation order for a small toolkit:
// a typecheck hook depends on a shared validation library, and a commit
// command references the typecheck hook in its body.
func Example() {
	components := []resolver.Component{
		{
			ID:       "validation-lib",
			Category: resolver.CategoryHook,
		},
		{
			ID:                   "typecheck",
			Category:             resolver.CategoryHook,
			DeclaredDependencies: []string{"validation-lib", "jq"},
		},
		{
			ID:                     "commit",
			Category:               resolver.CategoryCommand,
			ReferencedDependencies: []string{"typecheck"},
		},
	}

	registry, err := resolver.BuildRegistry(components)
	if err != nil {
		log.Fatalf("Failed to build registry: %v", err)
	}
	graph := resolver.BuildGraph(registry)

	// The user selected only the commit command; the closure pulls in
	// both hooks, and jq stays out because it is not a component.
	order, err := resolver.ResolveOrder([]string{"commit"}, graph)
	if err != nil {
		log.Fatalf("Failed to resolve order: %v", err)
	}
	fmt.Println("install order:", order)

	missing, err := resolver.MissingDependencies([]string{"commit"}, graph)
	if err != nil {
		log.Fatalf("Failed to compute missing dependencies: %v", err)
	}
	fmt.Println("missing from selection:", resolver.SortedIDs(missing))

	fmt.Println("external tools for typecheck:", graph.ExternalDependenciesOf("typecheck"))

	// Output:
	// install order: [validation-lib typecheck commit]
	// missing from selection: [typecheck validation-lib]
	// external tools for typecheck: [jq]
}

// Example_cycle shows the hard-failure policy for circular dependencies.
func Example_cycle() {
	components := []resolver.Component{
		{ID: "d", Category: resolver.CategoryCommand, DeclaredDependencies: []string{"e"}},
		{ID: "e", Category: resolver.CategoryCommand, DeclaredDependencies: []string{"d"}},
		{ID: "standalone", Category: resolver.CategoryCommand},
	}

	registry, err := resolver.BuildRegistry(components)
	if err != nil {
		log.Fatalf("Failed to build registry: %v", err)
	}
	graph := resolver.BuildGraph(registry)

	if _, err := resolver.ResolveOrder([]string{"d"}, graph); err != nil {
		fmt.Println("cyclic selection:", resolver.IsCircularDependency(err))
	}

	// A selection that does not reach the cycle still resolves.
	order, err := resolver.ResolveOrder([]string{"standalone"}, graph)
	if err != nil {
		log.Fatalf("Failed to resolve order: %v", err)
	}
	fmt.Println("unrelated selection:", order)

	// Output:
	// cyclic selection: true
	// unrelated selection: [standalone]
}
