package lifecycle

// State represents the phase of an intro screen sequence.
// Exactly one state is active at a time; Idle is the initial value.
type State int

const (
	// Idle is the state before the sequence starts and after it ends.
	Idle State = iota
	// Loading is the preparation phase (asset loading, or immediate).
	Loading
	// Running means the intro screen is displayed and the duration
	// strategy is deciding when it ends.
	Running
	// Failure means the sequence failed; the failure manager decides what
	// happens next.
	Failure
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Running:
		return "Running"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// IsIdle returns true if the sequence is not active.
func (s State) IsIdle() bool { return s == Idle }

// IsLoading returns true if the sequence is preparing.
func (s State) IsLoading() bool { return s == Loading }

// IsRunning returns true if the intro screen is displayed.
func (s State) IsRunning() bool { return s == Running }

// IsFailure returns true if the sequence is in the failure state.
func (s State) IsFailure() bool { return s == Failure }

// EventEmitter is called when the lifecycle state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}
