package domain

import "go.trai.ch/zerr"

var (
	// ErrNoCommand is returned when memo is invoked without a command to run.
	ErrNoCommand = zerr.New("no command specified")

	// ErrTracerUnavailable is returned when the syscall observer cannot be started
	// or never observed the command it was asked to run.
	ErrTracerUnavailable = zerr.New("tracer unavailable")

	// ErrTraceKilled reports a traced process killed by a signal. Its record is dropped.
	ErrTraceKilled = zerr.New("traced process was killed")

	// ErrTraceLogReadFailed is returned when the tracer log cannot be read back.
	ErrTraceLogReadFailed = zerr.New("failed to read trace log")

	// ErrCommandStartFailed is returned when the shell for a command cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrCommandNotRecorded is returned when a command has no dependency record.
	ErrCommandNotRecorded = zerr.New("command has no recorded dependencies")

	// ErrStoreMarshalFailed is returned when the dependency store cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal dependency store")

	// ErrStoreWriteFailed is returned when the dependency store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write dependency store")

	// ErrStoreCreateFailed is returned when the directory of the store cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create dependency store directory")

	// ErrStoreRemoveFailed is returned when the store file cannot be removed.
	ErrStoreRemoveFailed = zerr.New("failed to remove dependency store")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidFingerprintMode is returned for an unknown fingerprint mode.
	ErrInvalidFingerprintMode = zerr.New("invalid fingerprint mode, expected 'hash' or 'mtime'")

	// ErrInvalidDigest is returned for an unknown content digest.
	ErrInvalidDigest = zerr.New("invalid digest, expected 'sha256' or 'xxhash'")

	// ErrInvalidTelemetry is returned for an unknown telemetry exporter.
	ErrInvalidTelemetry = zerr.New("invalid telemetry exporter, expected 'none' or 'stdout'")

	// ErrFingerprintFailed is returned when fingerprinting traced dependencies fails.
	ErrFingerprintFailed = zerr.New("failed to fingerprint dependencies")

	// ErrWatchFailed is returned when watching dependency files fails.
	ErrWatchFailed = zerr.New("failed to watch dependencies")
)
