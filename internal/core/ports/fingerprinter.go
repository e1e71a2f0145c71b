package ports

import "go.trai.ch/memo/internal/core/domain"

// Fingerprinter computes file fingerprints for one invocation.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint returns the current fingerprint of path in the active mode.
	// Missing or unreadable files yield domain.Absent.
	Fingerprint(path string) domain.Fingerprint
	// Snapshot captures both fingerprint kinds of a regular file.
	// It reports false for directories and files that do not exist.
	Snapshot(path string) (domain.Dependency, bool)
	// Invalidate forgets every cached fingerprint.
	Invalidate()
}
