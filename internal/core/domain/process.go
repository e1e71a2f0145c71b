package domain

// Process describes one child process to spawn.
type Process struct {
	// Argv is the program followed by its arguments.
	Argv []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// PTY requests a pseudo-terminal when stdout is a terminal.
	PTY bool
}

// Invocation is one memoized command line and how to run it.
type Invocation struct {
	// Command is the exact command line, also the key of its Record.
	Command string
	// Shell runs the command line with "-c".
	Shell string
	// Tracer is the syscall observer binary.
	Tracer string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// PTY requests a pseudo-terminal when stdout is a terminal.
	PTY bool
}

// ShellArgv returns the argv that runs the command line through the shell.
func (i Invocation) ShellArgv() []string {
	shell := i.Shell
	if shell == "" {
		shell = DefaultShell
	}
	return []string{shell, "-c", i.Command}
}
