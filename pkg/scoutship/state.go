package scoutship

// State represents the lifecycle state of a Scoutship instance.
type State int

const (
	// StateStopped means the agent is not running.
	StateStopped State = iota

	// StateStarting means Start() was called and startup is in progress.
	StateStarting

	// StateRunning means the ingest loop is active.
	StateRunning

	// StateStopping means Stop() was called and shutdown is in progress.
	StateStopping

	// StateCrashed means the agent exited with an unrecoverable error.
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// CanStart returns true if Start() is valid in this state.
func (s State) CanStart() bool {
	return s == StateStopped || s == StateCrashed
}

// CanStop returns true if Stop() is valid in this state.
func (s State) CanStop() bool {
	return s == StateRunning || s == StateStarting
}

// IsRunning returns true if the ingest loop is active.
func (s State) IsRunning() bool {
	return s == StateRunning
}
