package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentkit/agentkit/pkg/resolver"
)

func newListCommand() *cobra.Command {
	var (
		category  string
		installed bool
		targetDir string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered components",
		Long: `List the components discovered in the source tree, grouped by
category. With --installed, list past install runs from the history
database under the target directory instead.`,
		Example: `  # List everything in the source tree
  agentkit list

  # Only hooks
  agentkit list --category hook

  # Past installs recorded under a target
  agentkit list --installed --target ~/.agentkit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if installed {
				return listInstalls(cmd, targetDir)
			}

			_, registry, graph, err := loadGraph(sourceDir)
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(categoryListing(registry, category))
			}

			for _, cat := range resolver.Categories() {
				if category != "" && category != string(cat) {
					continue
				}
				ids := registry.ByCategory(cat)
				if len(ids) == 0 {
					continue
				}
				fmt.Printf("%s (%d):\n", cat, len(ids))
				for _, id := range ids {
					c, _ := registry.Get(id)
					line := fmt.Sprintf("  %s", id)
					if c.Description != "" {
						line += " - " + c.Description
					}
					fmt.Println(line)
					if verbose {
						if deps := graph.DependenciesOf(id); len(deps) > 0 {
							fmt.Printf("      requires: %v\n", deps)
						}
						if ext := graph.ExternalDependenciesOf(id); len(ext) > 0 {
							fmt.Printf("      external tools: %v\n", ext)
						}
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category (command, hook, subagent)")
	cmd.Flags().BoolVar(&installed, "installed", false, "list past install runs instead")
	cmd.Flags().StringVarP(&targetDir, "target", "t", ".agentkit", "installation target directory")

	return cmd
}

// categoryListing groups component ids by category, honoring an optional
// category filter.
func categoryListing(registry *resolver.Registry, filter string) map[string][]string {
	out := make(map[string][]string)
	for _, cat := range resolver.Categories() {
		if filter != "" && filter != string(cat) {
			continue
		}
		out[string(cat)] = registry.ByCategory(cat)
	}
	return out
}

// listInstalls prints the install history recorded under targetDir.
func listInstalls(cmd *cobra.Command, targetDir string) error {
	store, err := openHistoryStore(cmd.Context(), targetDir)
	if err != nil {
		return err
	}
	defer store.Close()

	installs, err := store.ListInstalls(cmd.Context(), 50, 0)
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(installs)
	}

	for _, install := range installs {
		fmt.Printf("%s  %-9s  mode=%-7s  %s\n",
			install.StartedAt.Format("2006-01-02 15:04:05"),
			install.Status,
			install.Mode,
			install.ID,
		)
		if verbose {
			components, err := store.ListInstalledComponents(cmd.Context(), install.ID)
			if err != nil {
				return err
			}
			for _, c := range components {
				fmt.Printf("    %3d. %s (%s)\n", c.Position+1, c.ComponentID, c.Category)
			}
		}
	}
	return nil
}
