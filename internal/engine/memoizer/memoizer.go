// Package memoizer decides whether a command must run and keeps its
// dependency record current.
package memoizer

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Memoizer runs one command through lookup, evaluation, execution and persistence.
type Memoizer struct {
	cfg           *domain.Config
	store         ports.DependencyStore
	fingerprinter ports.Fingerprinter
	fileTracer    ports.FileTracer
	executor      ports.Executor
	reporter      ports.Reporter
	logger        ports.Logger
	tracer        ports.Tracer

	filter    *RelevanceFilter
	evaluator *Evaluator

	stdout io.Writer
	stderr io.Writer
}

// New creates a Memoizer for one invocation.
func New(
	cfg *domain.Config,
	store ports.DependencyStore,
	fingerprinter ports.Fingerprinter,
	fileTracer ports.FileTracer,
	executor ports.Executor,
	reporter ports.Reporter,
	logger ports.Logger,
	tracer ports.Tracer,
) *Memoizer {
	return &Memoizer{
		cfg:           cfg,
		store:         store,
		fingerprinter: fingerprinter,
		fileTracer:    fileTracer,
		executor:      executor,
		reporter:      reporter,
		logger:        logger,
		tracer:        tracer,
		filter:        NewRelevanceFilter(cfg.IrrelevantDirs),
		evaluator:     NewEvaluator(fingerprinter, cfg.Mode, logger),
		stdout:        os.Stdout,
		stderr:        os.Stderr,
	}
}

// WithOutput sets the streams the command writes to.
func (m *Memoizer) WithOutput(stdout, stderr io.Writer) *Memoizer {
	m.stdout = stdout
	m.stderr = stderr
	return m
}

// Memoize runs command unless its recorded dependencies are unchanged.
// The returned error is set when memo itself failed; the command's own
// failure is only reported through Outcome.ExitCode.
func (m *Memoizer) Memoize(ctx context.Context, command string) (domain.Outcome, error) {
	if strings.TrimSpace(command) == "" {
		return domain.Outcome{ExitCode: domain.ExitToolFailure}, domain.ErrNoCommand
	}

	ctx, span := m.tracer.Start(ctx, "memoize")
	defer span.End()
	span.SetAttribute("memo.command", command)

	outcome, err := m.memoize(ctx, command)

	span.SetAttribute("memo.decision", string(outcome.Decision))
	span.SetAttribute("memo.exit_code", outcome.ExitCode)
	if err != nil {
		span.RecordError(err)
	}
	return outcome, err
}

func (m *Memoizer) memoize(ctx context.Context, command string) (domain.Outcome, error) {
	deps, found := m.lookup(ctx, command)

	if found && !m.cfg.Force && m.evaluate(ctx, deps) {
		if m.cfg.ShowSkipped {
			m.reporter.Skipped(command)
		}
		return domain.Outcome{
			Decision:     domain.DecisionSkipped,
			ExitCode:     domain.ExitOK,
			Dependencies: deps,
		}, nil
	}

	m.reporter.Running(command)

	inv := m.invocation(command)
	if m.cfg.NoTrace {
		return m.execute(ctx, inv)
	}
	return m.traceAndRecord(ctx, inv)
}

func (m *Memoizer) lookup(ctx context.Context, command string) ([]domain.Dependency, bool) {
	_, span := m.tracer.Start(ctx, "lookup")
	defer span.End()

	deps, found := m.store.Get(command)
	span.SetAttribute("memo.found", found)
	return deps, found
}

func (m *Memoizer) evaluate(ctx context.Context, deps []domain.Dependency) bool {
	_, span := m.tracer.Start(ctx, "evaluate")
	defer span.End()

	upToDate := m.evaluator.UpToDate(deps)
	span.SetAttribute("memo.deps", len(deps))
	span.SetAttribute("memo.up_to_date", upToDate)
	return upToDate
}

// execute runs the command without tracing and leaves the store untouched.
func (m *Memoizer) execute(ctx context.Context, inv domain.Invocation) (domain.Outcome, error) {
	ctx, span := m.tracer.Start(ctx, "execute")
	defer span.End()

	code, err := m.executor.Execute(ctx, domain.Process{
		Argv: inv.ShellArgv(),
		Dir:  inv.Dir,
		PTY:  inv.PTY,
	}, m.stdout, m.stderr)
	outcome := domain.Outcome{Decision: domain.DecisionUntraced, ExitCode: code}
	if err != nil {
		span.RecordError(err)
		return outcome, err
	}
	return outcome, nil
}

// traceAndRecord runs the command under the file tracer and replaces its record.
// A failed or killed trace drops the record instead.
func (m *Memoizer) traceAndRecord(ctx context.Context, inv domain.Invocation) (domain.Outcome, error) {
	obs, err := m.trace(ctx, inv)
	if err != nil {
		return m.dropRecord(ctx, inv.Command, domain.ExitToolFailure, err)
	}

	if obs.Killed {
		killed := zerr.Wrap(domain.ErrTraceKilled, "dependencies not recorded")
		killed = zerr.With(killed, "signal", obs.Signal)
		m.logger.Error(zerr.With(killed, "command", inv.Command))
		return m.dropRecord(ctx, inv.Command, obs.ExitCode, nil)
	}

	// Fingerprints must describe the files as the command left them.
	m.fingerprinter.Invalidate()

	deps, err := collectDependencies(ctx, m.fingerprinter, m.filter, obs.Opened)
	if err != nil {
		return m.dropRecord(ctx, inv.Command, domain.ExitToolFailure, err)
	}

	m.store.Put(inv.Command, deps)
	if m.cfg.ShowDeps {
		m.reporter.Dependencies(inv.Command, deps)
	}

	outcome := domain.Outcome{
		Decision:     domain.DecisionTraced,
		ExitCode:     obs.ExitCode,
		Dependencies: deps,
	}
	if err := m.persist(ctx); err != nil {
		outcome.ExitCode = domain.ExitToolFailure
		return outcome, err
	}
	return outcome, nil
}

func (m *Memoizer) trace(ctx context.Context, inv domain.Invocation) (domain.Observation, error) {
	ctx, span := m.tracer.Start(ctx, "trace")
	defer span.End()

	obs, err := m.fileTracer.Trace(ctx, inv, m.stdout, m.stderr)
	if err != nil {
		span.RecordError(err)
		return domain.Observation{}, err
	}
	span.SetAttribute("memo.opened", len(obs.Opened))
	span.SetAttribute("memo.killed", obs.Killed)
	return obs, nil
}

// dropRecord forgets the record of command so that the next invocation traces again.
func (m *Memoizer) dropRecord(ctx context.Context, command string, code int, cause error) (domain.Outcome, error) {
	outcome := domain.Outcome{Decision: domain.DecisionTraceFailed, ExitCode: code}

	m.store.Delete(command)
	if err := m.persist(ctx); err != nil {
		outcome.ExitCode = domain.ExitToolFailure
		return outcome, errors.Join(cause, err)
	}
	return outcome, cause
}

func (m *Memoizer) persist(ctx context.Context) error {
	_, span := m.tracer.Start(ctx, "persist")
	defer span.End()

	if err := m.store.Save(); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to persist dependency store")
	}
	return nil
}

func (m *Memoizer) invocation(command string) domain.Invocation {
	return domain.Invocation{
		Command: command,
		Shell:   m.cfg.Shell,
		Tracer:  m.cfg.Strace,
		PTY:     m.cfg.PTY,
	}
}
