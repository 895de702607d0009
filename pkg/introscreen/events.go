package introscreen

import (
	"time"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
)

// Outcome describes how a run of the intro screen ended.
type Outcome int

const (
	// OutcomeNone means no run has finished yet.
	OutcomeNone Outcome = iota
	// OutcomeCompleted means the duration strategy reported success.
	OutcomeCompleted
	// OutcomeSkipped means the user skipped the screen.
	OutcomeSkipped
	// OutcomeFailed means the run went through the Failure state.
	OutcomeFailed
	// OutcomeAborted means the host left the run state on its own.
	OutcomeAborted
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCompleted:
		return "completed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// StateChangeEvent is emitted for every applied lifecycle transition.
type StateChangeEvent struct {
	RunID     string
	Previous  lifecycle.State
	Current   lifecycle.State
	Reason    string
	Timestamp time.Time
}

// SkipEvent is emitted when the skip gate fires.
type SkipEvent struct {
	RunID   string
	Gesture host.Gesture
	// Elapsed is the host time since the run started.
	Elapsed   time.Duration
	Timestamp time.Time
}

// FinishEvent is emitted when the host leaves the run state.
type FinishEvent struct {
	RunID   string
	Outcome Outcome
	// Elapsed is the host time since the run started.
	Elapsed   time.Duration
	Timestamp time.Time
}

// EventHandler receives orchestrator events. Handlers are called from the
// goroutine driving the host app and must not block.
type EventHandler interface {
	// OnStateChange is called for every lifecycle transition.
	OnStateChange(event StateChangeEvent)

	// OnSkip is called when the user skips the screen.
	OnSkip(event SkipEvent)

	// OnFinish is called once per run, when the host leaves the run state.
	OnFinish(event FinishEvent)
}

// BaseEventHandler provides no-op implementations of all EventHandler methods.
// Embed it to implement only the methods you need.
type BaseEventHandler struct{}

// OnStateChange implements EventHandler.
func (BaseEventHandler) OnStateChange(StateChangeEvent) {}

// OnSkip implements EventHandler.
func (BaseEventHandler) OnSkip(SkipEvent) {}

// OnFinish implements EventHandler.
func (BaseEventHandler) OnFinish(FinishEvent) {}
