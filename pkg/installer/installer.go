// Package installer places resolved components into a target toolkit
// directory. It consumes only resolver outputs: the registry for component
// metadata and an already-resolved installation order. Every run is
// recorded in the install history store when one is configured.
package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentkit/agentkit/pkg/resolver"
	"github.com/agentkit/agentkit/pkg/stores"
)

// Mode selects how component files reach the target directory.
type Mode string

const (
	// ModeCopy copies component sources into the target.
	ModeCopy Mode = "copy"

	// ModeSymlink symlinks component sources into the target, so edits
	// to the source tree take effect without reinstalling.
	ModeSymlink Mode = "symlink"
)

// Options configures an Installer.
type Options struct {
	// TargetDir is the toolkit installation root.
	TargetDir string

	// Mode is the installation mode; defaults to copy.
	Mode Mode

	// DryRun logs what would be installed without touching the target.
	DryRun bool
}

// Result summarizes a completed install run.
type Result struct {
	// InstallID is the run id recorded in the history store.
	InstallID string

	// Installed lists component ids in installation order.
	Installed []string

	// TargetDir is the installation root written to.
	TargetDir string

	// Duration is the wall-clock run time.
	Duration time.Duration
}

// Installer installs resolved components.
type Installer struct {
	opts   Options
	store  stores.Store
	logger zerolog.Logger
}

// New creates an installer. store may be nil to skip history recording.
func New(opts Options, store stores.Store, logger zerolog.Logger) (*Installer, error) {
	if opts.TargetDir == "" {
		return nil, fmt.Errorf("target directory is required")
	}
	if opts.Mode == "" {
		opts.Mode = ModeCopy
	}
	if opts.Mode != ModeCopy && opts.Mode != ModeSymlink {
		return nil, fmt.Errorf("unsupported install mode: %s", opts.Mode)
	}

	return &Installer{
		opts:   opts,
		store:  store,
		logger: logger.With().Str("component", "installer").Logger(),
	}, nil
}

// Install places the ordered components into the target directory.
// The order must come from resolver.ResolveOrder, so dependencies land
// before their dependents; a failure partway leaves the run marked failed
// in the history store.
func (i *Installer) Install(ctx context.Context, registry *resolver.Registry, order []string) (*Result, error) {
	started := time.Now()
	installID := uuid.NewString()

	logger := i.logger.With().Str("install_id", installID).Logger()
	logger.Info().
		Int("components", len(order)).
		Str("target", i.opts.TargetDir).
		Str("mode", string(i.opts.Mode)).
		Bool("dry_run", i.opts.DryRun).
		Msg("Starting install")

	if i.opts.DryRun {
		for _, id := range order {
			logger.Info().Str("component_id", id).Msg("Would install")
		}
		return &Result{
			InstallID: installID,
			Installed: append([]string(nil), order...),
			TargetDir: i.opts.TargetDir,
			Duration:  time.Since(started),
		}, nil
	}

	if err := i.recordStart(ctx, installID, started); err != nil {
		return nil, err
	}

	var records []stores.InstalledComponent
	for position, id := range order {
		component, ok := registry.Get(id)
		if !ok {
			// Orders from the resolver only contain registry members.
			err := resolver.NewUnknownComponentError(id)
			i.recordFinish(ctx, installID, err)
			return nil, err
		}

		if err := i.place(component); err != nil {
			i.recordFinish(ctx, installID, err)
			return nil, fmt.Errorf("failed to install %s: %w", id, err)
		}

		logger.Debug().
			Str("component_id", id).
			Str("category", string(component.Category)).
			Msg("Installed component")

		records = append(records, stores.InstalledComponent{
			InstallID:   installID,
			ComponentID: id,
			Category:    string(component.Category),
			Position:    position,
			SourcePath:  component.SourcePath,
			CreatedAt:   time.Now(),
		})
	}

	if i.store != nil {
		if err := i.store.AddInstalledComponents(ctx, records); err != nil {
			i.recordFinish(ctx, installID, err)
			return nil, err
		}
	}
	i.recordFinish(ctx, installID, nil)

	duration := time.Since(started)
	logger.Info().
		Int("components", len(order)).
		Dur("duration", duration).
		Msg("Install completed")

	return &Result{
		InstallID: installID,
		Installed: append([]string(nil), order...),
		TargetDir: i.opts.TargetDir,
		Duration:  duration,
	}, nil
}

// place writes one component into the target tree.
func (i *Installer) place(component *resolver.Component) error {
	dir := filepath.Join(i.opts.TargetDir, categoryDir(component.Category))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	dest := filepath.Join(dir, filepath.Base(component.SourcePath))

	if i.opts.Mode == ModeSymlink {
		src, err := filepath.Abs(component.SourcePath)
		if err != nil {
			return err
		}
		if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
			return err
		}
		return os.Symlink(src, dest)
	}

	mode := os.FileMode(0644)
	if component.Category == resolver.CategoryHook {
		mode = 0755
	}
	return os.WriteFile(dest, component.Body, mode)
}

func (i *Installer) recordStart(ctx context.Context, installID string, started time.Time) error {
	if i.store == nil {
		return nil
	}
	return i.store.CreateInstall(ctx, &stores.Install{
		ID:        installID,
		TargetDir: i.opts.TargetDir,
		Mode:      string(i.opts.Mode),
		Status:    stores.InstallStatusRunning,
		StartedAt: started,
		CreatedAt: started,
		UpdatedAt: started,
	})
}

func (i *Installer) recordFinish(ctx context.Context, installID string, runErr error) {
	if i.store == nil {
		return
	}

	status := stores.InstallStatusCompleted
	var errMsg *string
	if runErr != nil {
		status = stores.InstallStatusFailed
		msg := runErr.Error()
		errMsg = &msg
	}

	if err := i.store.UpdateInstallStatus(ctx, installID, status, errMsg); err != nil {
		i.logger.Warn().Err(err).Msg("Failed to record install status")
	}
}

// categoryDir maps a component category to its target subdirectory,
// mirroring the discovery layout.
func categoryDir(cat resolver.Category) string {
	switch cat {
	case resolver.CategoryHook:
		return "hooks"
	case resolver.CategorySubagent:
		return "agents"
	default:
		return "commands"
	}
}
