package ports

import "go.trai.ch/memo/internal/core/domain"

// DependencyStore is the in-memory command to dependency mapping loaded from disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DependencyStore interface {
	// Get returns the dependencies recorded for command.
	Get(command string) ([]domain.Dependency, bool)
	// Put replaces the dependencies recorded for command.
	Put(command string, deps []domain.Dependency)
	// Delete removes the record of command and reports whether one existed.
	Delete(command string) bool
	// Commands returns every recorded command in sorted order.
	Commands() []string
	// Save persists the whole mapping.
	Save() error
}

// StoreOpener opens dependency stores by path.
type StoreOpener interface {
	// Open loads the store at path. Missing, unreadable and corrupt files
	// yield an empty store; the returned status says which case applied.
	Open(path string) (DependencyStore, domain.LoadStatus)
	// Remove deletes the store file at path. A missing file is not an error.
	Remove(path string) error
}
