package domain

// Decision is the state the orchestrator settled on for one command.
type Decision string

const (
	// DecisionSkipped means every recorded dependency still matched.
	DecisionSkipped Decision = "skipped"
	// DecisionTraced means the command ran under the tracer and its record was replaced.
	DecisionTraced Decision = "traced"
	// DecisionUntraced means the command ran without tracing and the store was left alone.
	DecisionUntraced Decision = "untraced"
	// DecisionTraceFailed means the command ran but tracing failed and its record was dropped.
	DecisionTraceFailed Decision = "trace_failed"
)

// Outcome reports what happened to one memoized command.
type Outcome struct {
	Decision     Decision
	ExitCode     int
	Dependencies []Dependency
}

// Ran reports whether the command was executed.
func (o Outcome) Ran() bool {
	return o.Decision != DecisionSkipped
}

// LoadStatus classifies how the dependency store was loaded.
type LoadStatus uint8

const (
	// LoadOK means the store was read and decoded.
	LoadOK LoadStatus = iota
	// LoadMissing means no store file existed yet.
	LoadMissing
	// LoadCorrupt means the store file could not be decoded and was discarded.
	LoadCorrupt
	// LoadUnreadable means the store file exists but could not be read.
	LoadUnreadable
)

// String returns the name of the load status.
func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadCorrupt:
		return "corrupt"
	case LoadUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}
