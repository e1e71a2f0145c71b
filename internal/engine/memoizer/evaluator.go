package memoizer

import (
	"fmt"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
)

// Evaluator decides whether a recorded dependency list still matches the filesystem.
type Evaluator struct {
	fingerprinter ports.Fingerprinter
	mode          domain.FingerprintMode
	logger        ports.Logger
}

// NewEvaluator creates an Evaluator comparing fingerprints of the given mode.
func NewEvaluator(fingerprinter ports.Fingerprinter, mode domain.FingerprintMode, logger ports.Logger) *Evaluator {
	return &Evaluator{fingerprinter: fingerprinter, mode: mode, logger: logger}
}

// UpToDate reports whether every dependency still has its recorded fingerprint.
// It stops at the first mismatch. An empty list is up to date.
func (e *Evaluator) UpToDate(deps []domain.Dependency) bool {
	for _, dep := range deps {
		recorded := dep.Recorded(e.mode)
		current := e.fingerprinter.Fingerprint(dep.Path)
		if current != recorded {
			e.logger.Debug(fmt.Sprintf("file %s changed (%s != %s)", dep.Path, recorded, current))
			return false
		}
	}
	return true
}
