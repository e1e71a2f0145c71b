package domain

const (
	// DefaultStoreFile is the store file used when none is configured.
	DefaultStoreFile = ".deps"

	// DefaultConfigFile is the optional YAML configuration file read from the working directory.
	DefaultConfigFile = ".memo.yaml"

	// DefaultShell runs every memoized command.
	DefaultShell = "/bin/sh"

	// DefaultStrace is the syscall observer binary.
	DefaultStrace = "strace"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Exit codes reported by the memo binary besides the command's own status.
const (
	// ExitOK means the command was skipped or ran successfully.
	ExitOK = 0
	// ExitToolFailure means memo itself failed (tracer, store or configuration).
	ExitToolFailure = 125
	// ExitSignalBase is added to the signal number of a killed traced process.
	ExitSignalBase = 128
)
