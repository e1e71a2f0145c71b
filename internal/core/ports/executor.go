// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/memo/internal/core/domain"
)

// Executor defines the interface for spawning processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the process to completion and returns its exit status.
	//
	// A process killed by a signal reports 128 plus the signal number.
	// The error is only set when the process could not be started.
	Execute(ctx context.Context, proc domain.Process, stdout, stderr io.Writer) (int, error)
}
