package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// FingerprintMode selects which fingerprint is authoritative for one invocation.
type FingerprintMode string

const (
	// ModeHash compares file contents through a digest.
	ModeHash FingerprintMode = "hash"
	// ModeModTime compares file modification times.
	ModeModTime FingerprintMode = "mtime"
)

// Digest names the algorithm used for content fingerprints.
type Digest string

const (
	// DigestSHA256 is the default cryptographic content digest.
	DigestSHA256 Digest = "sha256"
	// DigestXXHash trades collision resistance for speed.
	DigestXXHash Digest = "xxhash"
)

// Telemetry names the span exporter installed next to the log bridge.
type Telemetry string

const (
	// TelemetryNone only forwards spans to the debug log.
	TelemetryNone Telemetry = "none"
	// TelemetryStdout additionally exports spans as JSON on stderr.
	TelemetryStdout Telemetry = "stdout"
)

// DefaultIrrelevantDirs lists the prefixes whose files are never tracked.
// System files change on every upgrade and would make every command look stale.
func DefaultIrrelevantDirs() []string {
	return []string{
		"/usr/share/",
		"/usr/lib/",
		"/lib",
		"/proc/",
		"/etc/",
	}
}

// Config is the configuration of one memo invocation.
// It is built once from defaults, the config file and flags, then passed by
// pointer to every collaborator that needs it.
type Config struct {
	StorePath      string
	Mode           FingerprintMode
	Digest         Digest
	IrrelevantDirs []string
	Strace         string
	Shell          string
	Telemetry      Telemetry

	Force       bool
	NoTrace     bool
	ShowSkipped bool
	ShowDeps    bool
	Verbose     bool
	PTY         bool
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		StorePath:      DefaultStoreFile,
		Mode:           ModeHash,
		Digest:         DigestSHA256,
		IrrelevantDirs: DefaultIrrelevantDirs(),
		Strace:         DefaultStrace,
		Shell:          DefaultShell,
		Telemetry:      TelemetryNone,
	}
}

// AddIrrelevantDirs appends prefixes that are not already configured.
func (c *Config) AddIrrelevantDirs(dirs ...string) {
	for _, d := range dirs {
		if d == "" || slices.Contains(c.IrrelevantDirs, d) {
			continue
		}
		c.IrrelevantDirs = append(c.IrrelevantDirs, d)
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeHash, ModeModTime:
	default:
		return zerr.With(zerr.Wrap(ErrInvalidFingerprintMode, "invalid configuration"), "mode", string(c.Mode))
	}
	switch c.Digest {
	case DigestSHA256, DigestXXHash:
	default:
		return zerr.With(zerr.Wrap(ErrInvalidDigest, "invalid configuration"), "digest", string(c.Digest))
	}
	switch c.Telemetry {
	case TelemetryNone, TelemetryStdout:
	default:
		return zerr.With(zerr.Wrap(ErrInvalidTelemetry, "invalid configuration"), "telemetry", string(c.Telemetry))
	}
	return nil
}
