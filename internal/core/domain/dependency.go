package domain

import "strconv"

// Dependency is one file a command read during its last traced execution.
// It carries both fingerprint kinds; the run's FingerprintMode picks the one
// that is compared.
//
// Only files that could be stat'ed are recorded, so ModTime is always a real
// value, the Unix epoch included. An empty Hash means the content could not
// be read.
type Dependency struct {
	Path    string `json:"path"`
	Hash    string `json:"hash,omitzero"`
	ModTime int64  `json:"mtime"`
}

// Recorded returns the fingerprint that was stored for the given mode.
func (d Dependency) Recorded(mode FingerprintMode) Fingerprint {
	if mode == ModeModTime {
		return PresentFingerprint(FormatModTime(d.ModTime))
	}
	if d.Hash == "" {
		return Absent
	}
	return PresentFingerprint(d.Hash)
}

// FormatModTime renders a modification time (Unix nanoseconds) as a fingerprint value.
func FormatModTime(nanos int64) string {
	return strconv.FormatInt(nanos, 10)
}
