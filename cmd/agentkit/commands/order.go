package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/agentkit/agentkit/pkg/resolver"
)

func newOrderCommand() *cobra.Command {
	var dotFile string

	cmd := &cobra.Command{
		Use:   "order [component...]",
		Short: "Print the resolved installation order",
		Long: `Resolve the installation order for the selected components (all
components when none are named) and print it, dependencies first.

The order covers the selection plus its transitive dependencies; external
tool names referenced by components are excluded.`,
		Example: `  # Order for the whole toolkit
  agentkit order

  # Order for one component and its dependencies
  agentkit order commit

  # Write a Graphviz rendering of the induced subgraph
  agentkit order commit --dot deps.dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, graph, err := loadGraph(sourceDir)
			if err != nil {
				return err
			}

			selected := selectionOrAll(args, registry)

			order, err := resolver.ResolveOrder(selected, graph)
			if err != nil {
				return err
			}

			if dotFile != "" {
				if err := os.WriteFile(dotFile, []byte(graph.ToDOT(order)), 0644); err != nil {
					return fmt.Errorf("failed to write DOT file: %w", err)
				}
				log.Info().Str("file", dotFile).Msg("Wrote dependency graph")
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(order)
			}
			for i, id := range order {
				fmt.Printf("%3d. %s\n", i+1, id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dotFile, "dot", "", "output DOT graph file (optional)")

	return cmd
}
