package commands

import (
	"testing"

	"github.com/agentkit/agentkit/pkg/resolver"
)

func TestCategoryListing(t *testing.T) {
	reg, err := resolver.BuildRegistry([]resolver.Component{
		{ID: "commit", Category: resolver.CategoryCommand},
		{ID: "typecheck", Category: resolver.CategoryHook},
		{ID: "reviewer", Category: resolver.CategorySubagent},
	})
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}

	all := categoryListing(reg, "")
	if len(all) != 3 {
		t.Fatalf("Expected all 3 categories, got %v", all)
	}
	if len(all["command"]) != 1 || all["command"][0] != "commit" {
		t.Errorf("Unexpected command listing: %v", all["command"])
	}

	hooks := categoryListing(reg, "hook")
	if len(hooks) != 1 {
		t.Fatalf("Expected only the hook category, got %v", hooks)
	}
	if len(hooks["hook"]) != 1 || hooks["hook"][0] != "typecheck" {
		t.Errorf("Unexpected hook listing: %v", hooks["hook"])
	}
	if _, present := hooks["command"]; present {
		t.Error("Expected command category to be filtered out")
	}
}
