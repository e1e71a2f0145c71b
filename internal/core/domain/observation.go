package domain

// Observation is what the syscall observer reports for one traced execution.
type Observation struct {
	// ExitCode is the exit status of the traced command.
	ExitCode int
	// Opened lists, in order, the paths of every successful read-only open
	// across the whole process tree. Paths are absolute but not yet filtered.
	Opened []string
	// Killed is set when any traced process was terminated by a signal.
	Killed bool
	// Signal is the name of the terminating signal when Killed is set.
	Signal string
}
