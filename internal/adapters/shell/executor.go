// Package shell spawns the processes memo runs, optionally on a pseudo-terminal.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/memo/internal/ui/output"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
	stdin  io.Reader
}

// NewExecutor creates a new Executor inheriting the caller's stdin.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
		stdin:  os.Stdin,
	}
}

// Execute runs proc to completion and returns its exit status.
// A PTY is only allocated when requested and stdout is a terminal.
func (e *Executor) Execute(ctx context.Context, proc domain.Process, stdout, stderr io.Writer) (int, error) {
	if len(proc.Argv) == 0 {
		return domain.ExitToolFailure, domain.ErrNoCommand
	}

	cmd := exec.CommandContext(ctx, proc.Argv[0], proc.Argv[1:]...) //nolint:gosec // user provided command
	cmd.Dir = proc.Dir

	usePTY := proc.PTY && output.IsTerminal(stdout)
	e.logger.Debug("spawning " + strings.Join(proc.Argv, " "))

	wait, err := e.start(cmd, usePTY, stdout, stderr)
	if err != nil {
		return domain.ExitToolFailure, zerr.With(
			zerr.Wrap(err, domain.ErrCommandStartFailed.Error()),
			"program", proc.Argv[0],
		)
	}

	if err := wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return domain.ExitToolFailure, zerr.Wrap(err, "failed to wait for command")
		}
		return exitStatus(exitErr), nil
	}

	return domain.ExitOK, nil
}

func (e *Executor) start(cmd *exec.Cmd, usePTY bool, stdout, stderr io.Writer) (func() error, error) {
	if !usePTY {
		cmd.Stdin = e.stdin
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		return cmd.Wait, nil
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to start pty")
	}
	if f, ok := stdout.(*os.File); ok {
		_ = pty.InheritSize(f, ptmx)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// A PTY merges stdout and stderr.
		_, _ = io.Copy(stdout, ptmx)
	}()

	return func() error {
		err := cmd.Wait()
		<-ioDone
		return err
	}, nil
}

// exitStatus follows the shell convention of 128+N for a process killed by signal N.
func exitStatus(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return domain.ExitSignalBase + int(ws.Signal())
	}
	return exitErr.ExitCode()
}
