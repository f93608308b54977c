package resolver

import (
	"strings"
	"testing"
)

// mustGraph builds a graph from components, failing the test on error.
func mustGraph(t *testing.T, components []Component) *Graph {
	t.Helper()
	reg, err := BuildRegistry(components)
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}
	return BuildGraph(reg)
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildGraph_ExternalFiltering(t *testing.T) {
	g := mustGraph(t, []Component{
		{ID: "git-hook-internal-dep", Category: CategoryHook},
		{
			ID:                   "git-hook",
			Category:             CategoryHook,
			DeclaredDependencies: []string{"git-hook-internal-dep", "git", "jq"},
		},
	})

	deps := g.DependenciesOf("git-hook")
	if !equalIDs(deps, []string{"git-hook-internal-dep"}) {
		t.Errorf("Expected internal deps [git-hook-internal-dep], got %v", deps)
	}

	ext := g.ExternalDependenciesOf("git-hook")
	if !equalIDs(ext, []string{"git", "jq"}) {
		t.Errorf("Expected external deps [git jq], got %v", ext)
	}
}

func TestBuildGraph_DeclarationOrderAndDedup(t *testing.T) {
	g := mustGraph(t, []Component{
		{ID: "base", Category: CategoryCommand},
		{ID: "extra", Category: CategoryCommand},
		{
			ID:       "top",
			Category: CategoryCommand,
			// Referenced deps follow declared deps; duplicates and
			// self-references are dropped.
			DeclaredDependencies:   []string{"base", "extra"},
			ReferencedDependencies: []string{"extra", "top", "base"},
		},
	})

	for i := 0; i < 5; i++ {
		deps := g.DependenciesOf("top")
		if !equalIDs(deps, []string{"base", "extra"}) {
			t.Fatalf("Expected stable deps [base extra], got %v", deps)
		}
	}
}

func TestBuildGraph_ReferencedDependenciesBecomeEdges(t *testing.T) {
	g := mustGraph(t, []Component{
		{ID: "helper", Category: CategorySubagent},
		{
			ID:                     "planner",
			Category:               CategorySubagent,
			ReferencedDependencies: []string{"helper", "grep"},
		},
	})

	if !equalIDs(g.DependenciesOf("planner"), []string{"helper"}) {
		t.Errorf("Expected referenced dep to become an edge, got %v", g.DependenciesOf("planner"))
	}
	if !equalIDs(g.ExternalDependenciesOf("planner"), []string{"grep"}) {
		t.Errorf("Expected grep to be external, got %v", g.ExternalDependenciesOf("planner"))
	}
}

func TestGraph_Dependents(t *testing.T) {
	g := mustGraph(t, []Component{
		{ID: "validation-lib", Category: CategoryHook},
		{ID: "typecheck", Category: CategoryHook, DeclaredDependencies: []string{"validation-lib"}},
		{ID: "lint", Category: CategoryHook, DeclaredDependencies: []string{"validation-lib"}},
	})

	dependents := g.DependentsOf("validation-lib")
	if !equalIDs(dependents, []string{"typecheck", "lint"}) {
		t.Errorf("Expected dependents [typecheck lint], got %v", dependents)
	}
	if len(g.DependentsOf("lint")) != 0 {
		t.Errorf("Expected no dependents for lint, got %v", g.DependentsOf("lint"))
	}
}

func TestGraph_ToDOT(t *testing.T) {
	g := mustGraph(t, []Component{
		{ID: "base", Category: CategoryCommand},
		{ID: "top", Category: CategoryCommand, DeclaredDependencies: []string{"base", "jq"}},
	})

	dot := g.ToDOT(nil)
	if !strings.HasPrefix(dot, "digraph components {") {
		t.Errorf("Expected DOT header, got: %q", dot)
	}
	if !strings.Contains(dot, `"top" -> "base";`) {
		t.Errorf("Expected internal edge in DOT output:\n%s", dot)
	}
	if !strings.Contains(dot, `"top" -> "jq" [style=dashed, color=gray];`) {
		t.Errorf("Expected dashed external edge in DOT output:\n%s", dot)
	}
}
