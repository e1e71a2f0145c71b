package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/memo/internal/adapters/telemetry"
	"go.trai.ch/memo/internal/adapters/watcher"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Watch memoizes the command, then re-memoizes it each time one of its
// recorded dependencies changes, until ctx is cancelled.
func (a *App) Watch(ctx context.Context, args []string, opts RunOptions) error {
	command, err := commandLine(args)
	if err != nil {
		return err
	}

	cfg, err := a.runConfig(opts)
	if err != nil {
		return err
	}
	if cfg.NoTrace {
		return zerr.With(zerr.Wrap(domain.ErrWatchFailed, "dependencies are unknown without tracing"), "command", command)
	}

	shutdown, err := telemetry.Setup(telemetry.NewBridge(a.logger), cfg.Telemetry, a.stderr)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

	for ctx.Err() == nil {
		store := a.openStore(cfg)

		outcome, err := a.newMemoizer(&cfg, store).Memoize(ctx, command)
		if err != nil {
			a.logger.Error(err)
		} else if outcome.Ran() && outcome.ExitCode != domain.ExitOK {
			a.logger.Warn(fmt.Sprintf("command exited with status %d", outcome.ExitCode))
		}

		deps, _ := store.Get(command)
		if len(deps) == 0 {
			a.logger.Warn(fmt.Sprintf("no dependencies recorded for %q, nothing to watch", command))
			return nil
		}

		changed, err := a.waitForChange(ctx, deps)
		if err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}
		a.logger.Info(fmt.Sprintf("changed: %s", strings.Join(changed, ", ")))
	}
	return nil
}

// waitForChange blocks until a tracked file changes and returns the changed paths.
// It returns no paths when ctx is cancelled first.
func (a *App) waitForChange(ctx context.Context, deps []domain.Dependency) ([]string, error) {
	w, err := a.watchers.NewWatcher()
	if err != nil {
		return nil, err
	}
	defer func() { _ = w.Stop() }()

	tracked := make(map[string]struct{}, len(deps))
	var dirs []string
	for _, dep := range deps {
		tracked[dep.Path] = struct{}{}
		dirs = append(dirs, filepath.Dir(dep.Path))
	}
	slices.Sort(dirs)
	dirs = slices.Compact(dirs)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(watchCtx, dirs); err != nil {
		return nil, err
	}
	a.logger.Debug(fmt.Sprintf("watching %d files in %d directories", len(tracked), len(dirs)))

	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case changes <- paths:
		default:
		}
	})

	go func() {
		for event := range w.Events() {
			if _, ok := tracked[event.Path]; ok {
				debouncer.Add(event.Path)
			}
		}
	}()

	select {
	case <-ctx.Done():
		return nil, nil
	case paths := <-changes:
		return paths, nil
	}
}
