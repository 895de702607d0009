package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/bft-labs/introscreen/pkg/log"
)

// ErrUnexpectedTransition is returned by Machine.Record when a transition is
// not part of the lifecycle table.
var ErrUnexpectedTransition = errors.New("lifecycle: unexpected transition")

// Transition reasons, named after the table event that produces them.
const (
	ReasonLoad  = "load"
	ReasonRun   = "run"
	ReasonFail  = "fail"
	ReasonReset = "reset"
)

// Valid transitions:
//   - Idle -> Loading (load)
//   - Loading -> Running (run)
//   - Loading, Running -> Failure (fail)
//   - Loading, Running, Failure -> Idle (reset)
var events = fsm.Events{
	{Name: ReasonLoad, Src: []string{Idle.String()}, Dst: Loading.String()},
	{Name: ReasonRun, Src: []string{Loading.String()}, Dst: Running.String()},
	{Name: ReasonFail, Src: []string{Loading.String(), Running.String()}, Dst: Failure.String()},
	{Name: ReasonReset, Src: []string{Loading.String(), Running.String(), Failure.String()}, Dst: Idle.String()},
}

// reasonFor maps a destination state to the table event reaching it.
func reasonFor(to State) string {
	switch to {
	case Loading:
		return ReasonLoad
	case Running:
		return ReasonRun
	case Failure:
		return ReasonFail
	default:
		return ReasonReset
	}
}

// Machine tracks lifecycle transitions against the transition table.
//
// The lifecycle state itself is a host state and requests follow last write
// wins; Machine never blocks a transition. It records what happened, reports
// transitions outside the table and notifies the emitter.
type Machine struct {
	fsm     *fsm.FSM
	logger  log.Logger
	emitter EventEmitter
}

// NewMachine creates a machine in the Idle state.
func NewMachine(logger log.Logger, emitter EventEmitter) *Machine {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Machine{
		fsm:     fsm.NewFSM(Idle.String(), events, fsm.Callbacks{}),
		logger:  logger,
		emitter: emitter,
	}
}

// Current returns the last recorded state.
func (m *Machine) Current() State {
	return parse(m.fsm.Current())
}

// Can reports whether moving to the given state is part of the table from
// the current state.
func (m *Machine) Can(to State) bool {
	return m.fsm.Can(reasonFor(to)) && parse(m.fsm.Current()) != to
}

// Record registers an applied transition from -> to and returns the reason
// that was logged. A transition outside the table is still recorded and
// reported as ErrUnexpectedTransition.
func (m *Machine) Record(from, to State) (string, error) {
	reason := reasonFor(to)

	var err error
	if cur := m.Current(); cur != from {
		err = fmt.Errorf("%w: recorded %s, observed %s -> %s", ErrUnexpectedTransition, cur, from, to)
		m.fsm.SetState(from.String())
	}
	if err == nil {
		if fsmErr := m.fsm.Event(context.Background(), reason); fsmErr != nil {
			err = fmt.Errorf("%w: %s -> %s: %v", ErrUnexpectedTransition, from, to, fsmErr)
		}
	}
	if err != nil {
		m.fsm.SetState(to.String())
		m.logger.Warn("unexpected lifecycle transition",
			log.String("from", from.String()),
			log.String("to", to.String()),
			log.Err(err),
		)
	}

	if m.emitter != nil {
		m.emitter.OnStateChange(from, to, reason)
	}

	m.logger.Info("state transition",
		log.String("from", from.String()),
		log.String("to", to.String()),
		log.String("reason", reason),
	)

	return reason, err
}

func parse(name string) State {
	switch name {
	case Loading.String():
		return Loading
	case Running.String():
		return Running
	case Failure.String():
		return Failure
	default:
		return Idle
	}
}
