package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentkit/agentkit/pkg/resolver"
)

func awaitScan(t *testing.T, scans <-chan []resolver.Component) []resolver.Component {
	t.Helper()
	select {
	case components := <-scans:
		return components
	case <-time.After(10 * time.Second):
		t.Fatal("Timed out waiting for a scan")
		return nil
	}
}

func TestWatcher_RescansOnChange(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "commands/alpha.md", "a\n")

	scanner, err := NewScanner(Config{Root: root})
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scans := make(chan []resolver.Component, 8)
	done := make(chan error, 1)
	go func() {
		done <- NewWatcher(scanner, zerolog.Nop()).Watch(ctx, func(components []resolver.Component) {
			scans <- components
		})
	}()

	initial := awaitScan(t, scans)
	if len(initial) != 1 || initial[0].ID != "alpha" {
		t.Fatalf("Expected initial scan to find [alpha], got %v", initial)
	}

	writeFile(t, root, "commands/beta.md", "b\n")

	// The rescan is debounced, and the file write may produce several
	// events; wait for the scan that includes the new component.
	deadline := time.After(10 * time.Second)
	for {
		var components []resolver.Component
		select {
		case components = <-scans:
		case <-deadline:
			t.Fatal("Timed out waiting for rescan to pick up beta")
		}
		if len(components) != 2 {
			continue
		}
		ids := make(map[string]bool, len(components))
		for _, c := range components {
			ids[c.ID] = true
		}
		if !ids["alpha"] || !ids["beta"] {
			t.Fatalf("Expected rescan to find alpha and beta, got %v", components)
		}
		break
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected Watch to stop cleanly on cancellation, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("Watch did not return after context cancellation")
	}
}
