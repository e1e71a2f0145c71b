package ports

import (
	"context"
	"io"

	"go.trai.ch/memo/internal/core/domain"
)

// FileTracer runs a command under a syscall observer and reports the files it read.
//
//go:generate go run go.uber.org/mock/mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type FileTracer interface {
	// Trace runs the invocation through its shell, following every child process.
	//
	// It returns domain.ErrTracerUnavailable when the observer cannot be started
	// or never observed the command. A killed process is not an error: it is
	// reported through Observation.Killed.
	Trace(ctx context.Context, inv domain.Invocation, stdout, stderr io.Writer) (domain.Observation, error)
}
