package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/agentkit/agentkit/pkg/installer"
	"github.com/agentkit/agentkit/pkg/resolver"
	"github.com/agentkit/agentkit/pkg/stores"
	"github.com/agentkit/agentkit/pkg/telemetry"
)

func newInstallCommand() *cobra.Command {
	var (
		targetDir string
		mode      string
		dryRun    bool
		noHistory bool
		trace     bool
	)

	cmd := &cobra.Command{
		Use:   "install [component...]",
		Short: "Install components with their dependencies",
		Long: `Install the selected components (all components when none are named)
into the target directory.

The selection is expanded to its dependency closure, ordered so that every
dependency is installed before its dependents, and recorded in the install
history. Dependencies missing from an explicit selection are added
automatically and reported.`,
		Example: `  # Install the whole toolkit
  agentkit install --target ~/.agentkit

  # Install one command and everything it requires
  agentkit install commit --target ~/.agentkit

  # Preview without touching the target
  agentkit install commit --dry-run

  # Symlink instead of copying
  agentkit install --mode symlink --target ~/.agentkit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := telemetry.DefaultConfig()
			cfg.Tracing.Enabled = trace
			metrics, err := telemetry.NewMetrics(cfg.Metrics)
			if err != nil {
				return err
			}
			tracer, err := telemetry.NewTracer(cfg.Tracing, cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
			if err != nil {
				return err
			}
			defer func() {
				if err := tracer.Shutdown(ctx); err != nil {
					log.Debug().Err(err).Msg("Tracer shutdown failed")
				}
			}()

			scanCtx, scanSpan := tracer.StartDiscoverySpan(ctx, sourceDir)
			_, registry, graph, err := loadGraph(sourceDir)
			telemetry.RecordError(scanSpan, err)
			scanSpan.End()
			if err != nil {
				return err
			}
			for _, cat := range resolver.Categories() {
				metrics.SetComponentsDiscovered(string(cat), len(registry.ByCategory(cat)))
			}

			selected := selectionOrAll(args, registry)

			resolveCtx, resolveSpan := tracer.StartResolveSpan(scanCtx, selected)
			resolveStarted := time.Now()
			missing, err := resolver.MissingDependencies(selected, graph)
			var order []string
			if err == nil {
				order, err = resolver.ResolveOrder(selected, graph)
			}
			telemetry.RecordError(resolveSpan, err)
			resolveSpan.End()
			if err != nil {
				if resolver.IsCircularDependency(err) {
					metrics.RecordCycleDetected()
				}
				metrics.RecordResolution("failure", time.Since(resolveStarted).Seconds())
				return err
			}
			metrics.RecordResolution("success", time.Since(resolveStarted).Seconds())

			if len(missing) > 0 {
				log.Warn().
					Strs("components", resolver.SortedIDs(missing)).
					Msg("Selection is missing dependencies; installing them too")
			}

			var store stores.Store
			if !dryRun && !noHistory {
				store, err = openHistoryStore(ctx, targetDir)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			inst, err := installer.New(installer.Options{
				TargetDir: targetDir,
				Mode:      installer.Mode(mode),
				DryRun:    dryRun,
			}, store, log.Logger)
			if err != nil {
				return err
			}

			installCtx, installSpan := tracer.StartInstallSpan(resolveCtx, targetDir)
			installStarted := time.Now()
			result, err := inst.Install(installCtx, registry, order)
			telemetry.RecordError(installSpan, err)
			installSpan.End()
			if err != nil {
				metrics.RecordInstall("failed", time.Since(installStarted).Seconds())
				return err
			}
			metrics.RecordInstall("completed", result.Duration.Seconds())

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(result)
			}

			fmt.Printf("Installed %d components to %s\n", len(result.Installed), result.TargetDir)
			for _, id := range result.Installed {
				fmt.Printf("  %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetDir, "target", "t", ".agentkit", "installation target directory")
	cmd.Flags().StringVar(&mode, "mode", "copy", "installation mode (copy, symlink)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve and report without installing")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip install history recording")
	cmd.Flags().BoolVar(&trace, "trace", false, "emit trace spans to stdout")

	return cmd
}

// openHistoryStore opens (and migrates) the install history database under
// the target directory.
func openHistoryStore(ctx context.Context, targetDir string) (stores.Store, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, err
	}

	store, err := stores.NewSQLiteStore(stores.Config{
		Path: filepath.Join(targetDir, "history.db"),
	})
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
