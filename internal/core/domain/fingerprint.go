package domain

// DirSentinel is the content fingerprint of every directory.
// Directories are considered present but their contents are never compared.
const DirSentinel = "dir"

// DirModTime is the modification-time fingerprint of every directory.
const DirModTime int64 = 1

// Fingerprint is a comparable file fingerprint.
// The zero value is Absent: the file could not be read or stat'ed.
type Fingerprint struct {
	Value   string
	Present bool
}

// Absent is the fingerprint of a missing or unreadable file.
var Absent = Fingerprint{}

// PresentFingerprint wraps a computed fingerprint value.
func PresentFingerprint(value string) Fingerprint {
	return Fingerprint{Value: value, Present: true}
}

// String renders the fingerprint for diagnostics.
func (f Fingerprint) String() string {
	if !f.Present {
		return "<absent>"
	}
	return f.Value
}
