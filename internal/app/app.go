// Package app implements the application layer for memo.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.trai.ch/memo/internal/adapters/fingerprint"
	"go.trai.ch/memo/internal/adapters/telemetry"
	"go.trai.ch/memo/internal/adapters/watcher"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/memo/internal/engine/memoizer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	stores       ports.StoreOpener
	executor     ports.Executor
	fileTracer   ports.FileTracer
	reporter     ports.Reporter
	logger       ports.Logger
	tracer       ports.Tracer
	watchers     ports.WatcherFactory

	stdout   io.Writer
	stderr   io.Writer
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	stores ports.StoreOpener,
	executor ports.Executor,
	fileTracer ports.FileTracer,
	reporter ports.Reporter,
	log ports.Logger,
	tracer ports.Tracer,
	watchers ports.WatcherFactory,
) *App {
	return &App{
		configLoader: loader,
		stores:       stores,
		executor:     executor,
		fileTracer:   fileTracer,
		reporter:     reporter,
		logger:       log,
		tracer:       tracer,
		watchers:     watchers,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithOutput sets the streams memoized commands write to.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDebounceWindow sets how long Watch waits for file events to settle.
func (a *App) WithDebounceWindow(window time.Duration) *App {
	a.debounce = window
	return a
}

// Options are the settings shared by every command.
type Options struct {
	ConfigPath string
	JSONLog    bool
	Verbose    bool
	Store      string
}

// RunOptions configuration for the Run and Watch methods.
// Boolean flags can only switch settings on; empty strings keep the configured value.
type RunOptions struct {
	Options

	ModTime     bool
	Force       bool
	NoTrace     bool
	ShowSkipped bool
	ShowDeps    bool
	PTY         bool
	Digest      string
	Irrelevant  []string
}

// Run memoizes the command formed by joining args with spaces and returns
// the exit status memo should report.
func (a *App) Run(ctx context.Context, args []string, opts RunOptions) (int, error) {
	command, err := commandLine(args)
	if err != nil {
		return domain.ExitToolFailure, err
	}

	cfg, err := a.runConfig(opts)
	if err != nil {
		return domain.ExitToolFailure, err
	}

	shutdown, err := telemetry.Setup(telemetry.NewBridge(a.logger), cfg.Telemetry, a.stderr)
	if err != nil {
		return domain.ExitToolFailure, err
	}
	defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

	store := a.openStore(cfg)

	outcome, err := a.newMemoizer(&cfg, store).Memoize(ctx, command)
	return outcome.ExitCode, err
}

// Deps prints the recorded dependencies of a command, or of every recorded
// command when args is empty.
func (a *App) Deps(_ context.Context, args []string, opts Options) error {
	cfg, err := a.configure(opts)
	if err != nil {
		return err
	}

	store := a.openStore(cfg)

	if len(args) == 0 {
		commands := store.Commands()
		if len(commands) == 0 {
			a.logger.Info(fmt.Sprintf("no commands recorded in %s", cfg.StorePath))
			return nil
		}
		for _, command := range commands {
			deps, _ := store.Get(command)
			a.reporter.Recorded(command, deps)
		}
		return nil
	}

	command, err := commandLine(args)
	if err != nil {
		return err
	}

	deps, ok := store.Get(command)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrCommandNotRecorded, "failed to list dependencies"), "command", command)
	}
	a.reporter.Recorded(command, deps)
	return nil
}

// Forget removes the record of a command so that it runs on its next invocation.
func (a *App) Forget(_ context.Context, args []string, opts Options) error {
	command, err := commandLine(args)
	if err != nil {
		return err
	}

	cfg, err := a.configure(opts)
	if err != nil {
		return err
	}

	store := a.openStore(cfg)

	if !store.Delete(command) {
		a.logger.Info(fmt.Sprintf("nothing recorded for %q", command))
		return nil
	}
	if err := store.Save(); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("forgot %q", command))
	return nil
}

// Clean deletes the dependency store.
func (a *App) Clean(_ context.Context, opts Options) error {
	cfg, err := a.configure(opts)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("removing %s...", cfg.StorePath))
	if err := a.stores.Remove(cfg.StorePath); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed %s", cfg.StorePath))
	return nil
}

// configure applies the logging flags and loads the configuration file.
func (a *App) configure(opts Options) (domain.Config, error) {
	a.logger.SetJSON(opts.JSONLog)
	a.logger.SetVerbose(opts.Verbose)

	path := opts.ConfigPath
	if path == "" {
		path = domain.DefaultConfigFile
	}

	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Store != "" {
		cfg.StorePath = opts.Store
	}
	cfg.Verbose = opts.Verbose
	return cfg, nil
}

// runConfig overlays the run flags on the loaded configuration.
func (a *App) runConfig(opts RunOptions) (domain.Config, error) {
	cfg, err := a.configure(opts.Options)
	if err != nil {
		return domain.Config{}, err
	}

	if opts.ModTime {
		cfg.Mode = domain.ModeModTime
	}
	if opts.Digest != "" {
		cfg.Digest = domain.Digest(opts.Digest)
	}
	cfg.Force = cfg.Force || opts.Force
	cfg.NoTrace = cfg.NoTrace || opts.NoTrace
	cfg.ShowSkipped = cfg.ShowSkipped || opts.ShowSkipped
	cfg.ShowDeps = cfg.ShowDeps || opts.ShowDeps
	cfg.PTY = cfg.PTY || opts.PTY
	cfg.AddIrrelevantDirs(opts.Irrelevant...)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func (a *App) openStore(cfg domain.Config) ports.DependencyStore {
	store, status := a.stores.Open(cfg.StorePath)
	switch status {
	case domain.LoadCorrupt:
		a.logger.Warn(fmt.Sprintf("dependency store %s is corrupt, starting empty", cfg.StorePath))
	case domain.LoadUnreadable:
		a.logger.Warn(fmt.Sprintf("dependency store %s is unreadable, starting empty", cfg.StorePath))
	}
	return store
}

func (a *App) newMemoizer(cfg *domain.Config, store ports.DependencyStore) *memoizer.Memoizer {
	return memoizer.New(
		cfg,
		store,
		fingerprint.New(cfg.Mode, cfg.Digest),
		a.fileTracer,
		a.executor,
		a.reporter,
		a.logger,
		a.tracer,
	).WithOutput(a.stdout, a.stderr)
}

// commandLine joins args into the command string that keys its record.
func commandLine(args []string) (string, error) {
	command := strings.Join(args, " ")
	if strings.TrimSpace(command) == "" {
		return "", domain.ErrNoCommand
	}
	return command, nil
}
