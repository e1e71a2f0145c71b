package ports

import "go.trai.ch/memo/internal/core/domain"

// Reporter prints the user-facing progress of memoized commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Running announces a command that is about to execute.
	Running(command string)
	// Skipped announces a command whose dependencies are unchanged.
	Skipped(command string)
	// Dependencies lists what a traced command was found to depend on.
	Dependencies(command string, deps []domain.Dependency)
	// Recorded prints the stored record of a command.
	Recorded(command string, deps []domain.Dependency)
}
