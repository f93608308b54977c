package commands

import (
	"github.com/rs/zerolog/log"

	"github.com/agentkit/agentkit/pkg/discovery"
	"github.com/agentkit/agentkit/pkg/resolver"
)

// loadGraph discovers the source tree and builds the registry and graph
// for one resolution session.
func loadGraph(root string) ([]resolver.Component, *resolver.Registry, *resolver.Graph, error) {
	scanner, err := discovery.NewScanner(discovery.Config{Root: root})
	if err != nil {
		return nil, nil, nil, err
	}

	components, err := scanner.Scan()
	if err != nil {
		return nil, nil, nil, err
	}

	registry, err := resolver.BuildRegistry(components)
	if err != nil {
		return nil, nil, nil, err
	}

	log.Debug().
		Int("components", registry.Len()).
		Str("source", root).
		Msg("Built component registry")

	return components, registry, resolver.BuildGraph(registry), nil
}

// selectionOrAll returns args when given, else every registered id.
func selectionOrAll(args []string, registry *resolver.Registry) []string {
	if len(args) > 0 {
		return args
	}
	return registry.IDs()
}
