// Package lifecycle defines the intro screen lifecycle states and the
// transition table they follow.
//
// The lifecycle has four states: [Idle], [Loading], [Running] and [Failure].
// Idle is the initial state. The sequence moves to Loading when the host
// enters the configured run state, to Running once loading completes, and to
// Failure when the duration strategy or the loader reports a failure. Leaving
// the run state always resets the lifecycle to Idle.
//
// # Usage
//
//	m := lifecycle.NewMachine(logger, emitter)
//	reason, err := m.Record(lifecycle.Idle, lifecycle.Loading)
//
// # State Machine
//
// Valid state transitions:
//   - Idle -> Loading
//   - Loading -> Running, Failure, Idle
//   - Running -> Failure, Idle
//   - Failure -> Idle
//
// Idle and Failure are absorbing: only an external event (entering the run
// state, or the failure manager's decision) moves them forward.
//
// # Version
//
// Current version: 2.0.0
// Minimum compatible version: 2.0.0
//
// See version.go for version constants that can be used programmatically.
package lifecycle
