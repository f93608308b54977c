package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/agentkit/agentkit/pkg/discovery"
	"github.com/agentkit/agentkit/pkg/resolver"
)

func newValidateCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the toolkit source tree",
		Long: `Validate the toolkit source tree: parse every component descriptor,
check for duplicate ids, and scan the dependency graph for cycles.

With --watch, the source tree is re-validated on every change.`,
		Example: `  # Validate the current directory
  agentkit validate

  # Validate a specific toolkit
  agentkit validate --source ./my-toolkit

  # Keep validating as files change
  agentkit validate --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				components, err := runValidation(sourceDir)
				if err != nil {
					return err
				}
				fmt.Printf("OK: %d components, no duplicate ids, no cycles\n", len(components))
				return nil
			}

			scanner, err := discovery.NewScanner(discovery.Config{Root: sourceDir})
			if err != nil {
				return err
			}

			watcher := discovery.NewWatcher(scanner, log.Logger)
			return watcher.Watch(cmd.Context(), func(components []resolver.Component) {
				if err := validateComponents(components); err != nil {
					log.Error().Err(err).Msg("Validation failed")
					return
				}
				log.Info().Int("components", len(components)).Msg("Validation passed")
			})
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "re-validate on source tree changes")

	return cmd
}

// runValidation scans the source tree and validates the result.
func runValidation(root string) ([]resolver.Component, error) {
	components, _, _, err := loadGraph(root)
	if err != nil {
		return nil, err
	}
	if err := validateComponents(components); err != nil {
		return nil, err
	}
	return components, nil
}

// validateComponents builds a fresh registry and graph from the component
// list and scans the whole graph for cycles, reporting external
// dependencies when verbose.
func validateComponents(components []resolver.Component) error {
	registry, err := resolver.BuildRegistry(components)
	if err != nil {
		return err
	}
	graph := resolver.BuildGraph(registry)

	cycle, err := resolver.DetectCycle(registry.IDs(), graph)
	if err != nil {
		return err
	}
	if cycle != nil {
		return resolver.NewCircularDependencyError(cycle)
	}

	if verbose {
		for _, id := range registry.IDs() {
			if ext := graph.ExternalDependenciesOf(id); len(ext) > 0 {
				log.Info().
					Str("component_id", id).
					Strs("tools", ext).
					Msg("Component requires external tools")
			}
		}
	}

	return nil
}
