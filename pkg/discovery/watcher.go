package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/agentkit/agentkit/pkg/resolver"
)

// rescanDelay debounces bursts of file-system events into one rescan.
const rescanDelay = 500 * time.Millisecond

// Watcher re-runs discovery whenever the toolkit source tree changes.
type Watcher struct {
	scanner *Scanner
	logger  zerolog.Logger
}

// NewWatcher creates a watcher over the scanner's source tree.
func NewWatcher(scanner *Scanner, logger zerolog.Logger) *Watcher {
	return &Watcher{
		scanner: scanner,
		logger:  logger.With().Str("component", "discovery-watcher").Logger(),
	}
}

// Watch runs an initial scan, then rescans on every change until the
// context is cancelled. Each successful scan is delivered to onScan;
// scan failures are logged and do not stop the watch.
func (w *Watcher) Watch(ctx context.Context, onScan func([]resolver.Component)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	roots := w.scanner.Roots()
	for _, root := range roots {
		if err := watcher.Add(root); err != nil {
			w.logger.Warn().Err(err).Str("path", root).Msg("Failed to watch directory")
		}
	}

	w.logger.Info().
		Int("paths", len(roots)).
		Msg("Watching toolkit source tree")

	if err := w.rescan(onScan); err != nil {
		w.logger.Error().Err(err).Msg("Initial scan failed")
	}

	var rescanTimer *time.Timer
	defer func() {
		if rescanTimer != nil {
			rescanTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug().
				Str("file", event.Name).
				Str("op", event.Op.String()).
				Msg("Component file changed")

			if rescanTimer != nil {
				rescanTimer.Stop()
			}
			rescanTimer = time.AfterFunc(rescanDelay, func() {
				if err := w.rescan(onScan); err != nil {
					w.logger.Error().Err(err).Msg("Rescan failed")
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

func (w *Watcher) rescan(onScan func([]resolver.Component)) error {
	components, err := w.scanner.Scan()
	if err != nil {
		return err
	}

	w.logger.Info().
		Int("components", len(components)).
		Msg("Discovered components")

	onScan(components)
	return nil
}
