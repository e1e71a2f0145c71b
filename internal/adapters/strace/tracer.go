// Package strace observes the files a command reads by running it under strace.
package strace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

// syscallFilter restricts the trace to the calls that open files.
const syscallFilter = "trace=open,openat"

// Tracer implements ports.FileTracer on top of an external strace binary.
type Tracer struct {
	executor ports.Executor
	logger   ports.Logger
}

// New creates a Tracer that spawns strace through the given executor.
func New(executor ports.Executor, logger ports.Logger) *Tracer {
	return &Tracer{executor: executor, logger: logger}
}

// Trace runs the invocation under strace and reports every successful
// read-only open across the whole process tree.
func (t *Tracer) Trace(
	ctx context.Context,
	inv domain.Invocation,
	stdout, stderr io.Writer,
) (domain.Observation, error) {
	logFile, err := os.CreateTemp("", "memo-trace-*.log")
	if err != nil {
		return domain.Observation{}, errors.Join(domain.ErrTracerUnavailable,
			zerr.Wrap(err, "failed to create trace log"))
	}
	logPath := logFile.Name()
	_ = logFile.Close()
	defer func() { _ = os.Remove(logPath) }()

	code, err := t.executor.Execute(ctx, domain.Process{
		Argv: traceArgv(inv, logPath),
		Dir:  inv.Dir,
		PTY:  inv.PTY,
	}, stdout, stderr)
	if err != nil {
		return domain.Observation{}, errors.Join(domain.ErrTracerUnavailable, err)
	}

	log, err := readLog(logPath)
	if err != nil {
		return domain.Observation{}, errors.Join(domain.ErrTracerUnavailable, err)
	}
	if !log.observed() {
		return domain.Observation{}, zerr.With(
			zerr.Wrap(domain.ErrTracerUnavailable, "trace log has no exit record"),
			"exit_code", code)
	}

	base, err := filepath.Abs(inv.Dir)
	if err != nil {
		return domain.Observation{}, zerr.Wrap(err, "failed to resolve working directory")
	}

	obs := domain.Observation{
		ExitCode: code,
		Opened:   log.readOnlyPaths(base),
		Killed:   log.killed,
		Signal:   log.signal,
	}
	if obs.Killed && obs.ExitCode <= domain.ExitSignalBase {
		if sig := unix.SignalNum(obs.Signal); sig != 0 {
			obs.ExitCode = domain.ExitSignalBase + int(sig)
		}
	}

	t.logger.Debug(fmt.Sprintf("trace observed %d read-only opens", len(obs.Opened)))
	return obs, nil
}

func traceArgv(inv domain.Invocation, logPath string) []string {
	tracer := inv.Tracer
	if tracer == "" {
		tracer = domain.DefaultStrace
	}
	argv := []string{tracer, "-f", "-q", "-o", logPath, "-e", syscallFilter}
	return append(argv, inv.ShellArgv()...)
}

func readLog(path string) (traceLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return traceLog{}, zerr.Wrap(err, domain.ErrTraceLogReadFailed.Error())
	}
	defer func() { _ = f.Close() }()

	log, err := parseTrace(f)
	if err != nil {
		return traceLog{}, zerr.Wrap(err, domain.ErrTraceLogReadFailed.Error())
	}
	return log, nil
}
