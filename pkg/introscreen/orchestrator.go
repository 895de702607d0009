package introscreen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
	"github.com/bft-labs/introscreen/pkg/log"
)

// Orchestrator drives one intro screen sequence inside a host app whose
// top-level state is of type S.
//
// While the host is in Preferences.RunAt the orchestrator moves the lifecycle
// through Loading and Running; the duration strategy then either requests
// Preferences.TransitionTo or the Failure state, where the failure manager
// takes over. Leaving RunAt for any reason resets the lifecycle to Idle.
//
// All methods must be called from the goroutine driving the host app.
type Orchestrator[S comparable] struct {
	prefs   Preferences[S]
	failure FailureManager
	opts    options
	logger  log.Logger

	app       *host.App
	hostState *host.State[S]
	lifecycle *host.State[lifecycle.State]
	machine   *lifecycle.Machine

	loadingClaimed bool

	// Run bookkeeping, reset every time the host enters RunAt.
	runID     string
	runLogger log.Logger
	runStart  time.Duration
	active    bool
	ran       bool
	failed    bool
	skipped   bool
	outcome   Outcome
}

// New creates an orchestrator. It validates the preferences and checks that
// the sub-modules are compatible; Install must be called before the first
// host tick.
func New[S comparable](prefs Preferences[S], failure FailureManager, opts ...Option) (*Orchestrator[S], error) {
	if err := validateModuleVersions(); err != nil {
		return nil, fmt.Errorf("version compatibility check failed: %w", err)
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if failure == nil {
		return nil, fmt.Errorf("%w: failure manager is required", ErrInvalidPreferences)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	orc := &Orchestrator[S]{
		prefs:   prefs,
		failure: failure,
		opts:    o,
		logger:  o.logger.With(log.Component("introscreen")),
	}
	orc.runLogger = orc.logger

	if prefs.RunAt == prefs.TransitionTo {
		orc.logger.Warn("run and target states are equal; the sequence cannot move forward",
			log.Any("state", prefs.RunAt),
		)
	}

	return orc, nil
}

// Install wires the orchestrator into app. The host state of type S must
// already be registered. The duration strategy, display, skip gate and
// failure manager are configured in that order, then plugins are initialized
// with ctx.
func (o *Orchestrator[S]) Install(ctx context.Context, app *host.App) error {
	if o.app != nil {
		return ErrAlreadyInstalled
	}

	hostState, ok := host.StateOf[S](app)
	if !ok {
		return fmt.Errorf("%w: %T", ErrHostStateMissing, o.prefs.RunAt)
	}
	lc, err := host.NewState(app, lifecycle.Idle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAlreadyInstalled, err)
	}

	o.app = app
	o.hostState = hostState
	o.lifecycle = lc
	o.machine = lifecycle.NewMachine(o.logger, o)

	hostState.OnEnter(o.prefs.RunAt, o.start)
	hostState.OnExit(o.prefs.RunAt, o.reset)
	hostState.Observe(o.observeHost)
	// Bookkeeping hooks go first so that strategy and failure manager hooks,
	// which may finish the run, see the transition already recorded.
	for _, st := range []lifecycle.State{lifecycle.Idle, lifecycle.Loading, lifecycle.Running, lifecycle.Failure} {
		lc.OnEnter(st, func() { o.enterLifecycle(st) })
	}
	lc.OnEnter(lifecycle.Loading, o.enterLoading)

	if err := o.prefs.Duration.ConfigureDuration(o); err != nil {
		return fmt.Errorf("configure duration: %w", err)
	}
	if err := o.prefs.UI.ConfigureUI(o); err != nil {
		return fmt.Errorf("configure display: %w", err)
	}
	if o.prefs.SkipOnInput {
		o.installSkipGate()
	}
	if err := o.failure.ManageFailure(o); err != nil {
		return fmt.Errorf("configure failure manager: %w", err)
	}
	if err := o.initializePlugins(ctx); err != nil {
		return err
	}

	o.logger.Info("intro screen installed",
		log.Any("run_at", o.prefs.RunAt),
		log.Any("transition_to", o.prefs.TransitionTo),
		log.Bool("skip_on_input", o.prefs.SkipOnInput),
		log.String("duration", fmt.Sprintf("%T", o.prefs.Duration)),
	)
	return nil
}

// Preferences returns a copy of the preferences.
func (o *Orchestrator[S]) Preferences() Preferences[S] {
	return o.prefs
}

// State returns the current lifecycle state. Idle before Install.
func (o *Orchestrator[S]) State() lifecycle.State {
	if o.lifecycle == nil {
		return lifecycle.Idle
	}
	return o.lifecycle.Get()
}

// IsIdle reports whether the lifecycle is Idle.
func (o *Orchestrator[S]) IsIdle() bool { return o.State().IsIdle() }

// IsLoading reports whether the lifecycle is Loading.
func (o *Orchestrator[S]) IsLoading() bool { return o.State().IsLoading() }

// IsRunning reports whether the lifecycle is Running.
func (o *Orchestrator[S]) IsRunning() bool { return o.State().IsRunning() }

// IsFailure reports whether the lifecycle is Failure.
func (o *Orchestrator[S]) IsFailure() bool { return o.State().IsFailure() }

// StartedRunning reports whether the lifecycle entered Running at the end of
// the previous tick.
func (o *Orchestrator[S]) StartedRunning() bool {
	return o.lifecycle != nil && o.lifecycle.Entered(lifecycle.Running)()
}

// RunID returns the identifier of the current or last run.
func (o *Orchestrator[S]) RunID() string {
	return o.runID
}

// Outcome returns how the last run ended, or OutcomeNone while a run is in
// progress or before the first one.
func (o *Orchestrator[S]) Outcome() Outcome {
	if o.active {
		return OutcomeNone
	}
	return o.outcome
}

// App implements Context.
func (o *Orchestrator[S]) App() *host.App {
	return o.app
}

// Lifecycle implements Context.
func (o *Orchestrator[S]) Lifecycle() *host.State[lifecycle.State] {
	return o.lifecycle
}

// Logger implements Context.
func (o *Orchestrator[S]) Logger() log.Logger {
	return o.runLogger
}

// Display implements Context.
func (o *Orchestrator[S]) Display() Display {
	return o.prefs.UI
}

// SkipOnInput implements Context.
func (o *Orchestrator[S]) SkipOnInput() bool {
	return o.prefs.SkipOnInput
}

// AddRunningSystem implements Context.
func (o *Orchestrator[S]) AddRunningSystem(sys host.System, conditions ...host.Condition) {
	conds := append([]host.Condition{o.lifecycle.In(lifecycle.Running)}, conditions...)
	o.app.AddSystem(sys, conds...)
}

// ClaimLoading implements Context.
func (o *Orchestrator[S]) ClaimLoading() {
	o.loadingClaimed = true
}

// OnExitRunAt implements Context.
func (o *Orchestrator[S]) OnExitRunAt(fn func()) {
	o.hostState.OnExit(o.prefs.RunAt, fn)
}

// Succeed implements Context.
func (o *Orchestrator[S]) Succeed() {
	o.hostState.Set(o.prefs.TransitionTo)
}

// Fail implements Context.
func (o *Orchestrator[S]) Fail() {
	o.lifecycle.Set(lifecycle.Failure)
}

// Exit implements Context. A run still in progress is finished first, since
// the host will not leave the run state anymore.
func (o *Orchestrator[S]) Exit() {
	if o.active {
		o.finish(o.prefs.RunAt)
	}
	o.app.RequestExit()
}

// OnStateChange implements lifecycle.EventEmitter.
func (o *Orchestrator[S]) OnStateChange(previous, current lifecycle.State, reason string) {
	event := StateChangeEvent{
		RunID:     o.runID,
		Previous:  previous,
		Current:   current,
		Reason:    reason,
		Timestamp: o.opts.now(),
	}
	for _, h := range o.opts.handlers {
		h.OnStateChange(event)
	}
}

func (o *Orchestrator[S]) start() {
	o.runID = uuid.NewString()
	o.runLogger = o.logger.With(log.String("run_id", o.runID))
	o.runStart = o.app.Elapsed()
	o.active = true
	o.ran = false
	o.failed = false
	o.skipped = false
	o.outcome = OutcomeNone

	o.runLogger.Info("intro screen started", log.Any("state", o.prefs.RunAt))
	o.lifecycle.Set(lifecycle.Loading)
}

func (o *Orchestrator[S]) reset() {
	o.lifecycle.Set(lifecycle.Idle)
}

func (o *Orchestrator[S]) enterLoading() {
	if !o.loadingClaimed {
		o.lifecycle.Set(lifecycle.Running)
	}
}

func (o *Orchestrator[S]) observeHost(t host.Transition[S]) {
	if t.Initial || t.From != o.prefs.RunAt || !o.active {
		return
	}
	o.finish(t.To)
}

func (o *Orchestrator[S]) enterLifecycle(to lifecycle.State) {
	from := o.machine.Current()
	if from == to {
		return
	}
	switch to {
	case lifecycle.Running:
		o.ran = true
	case lifecycle.Failure:
		o.failed = true
	}
	_, _ = o.machine.Record(from, to)
}

func (o *Orchestrator[S]) finish(next S) {
	o.active = false
	switch {
	case o.failed:
		o.outcome = OutcomeFailed
	case o.skipped:
		o.outcome = OutcomeSkipped
	case o.ran && next == o.prefs.TransitionTo:
		o.outcome = OutcomeCompleted
	default:
		o.outcome = OutcomeAborted
	}

	elapsed := o.app.Elapsed() - o.runStart
	o.runLogger.Info("intro screen finished",
		log.Stringer("outcome", o.outcome),
		log.Duration("elapsed", elapsed),
		log.Any("next", next),
	)

	event := FinishEvent{
		RunID:     o.runID,
		Outcome:   o.outcome,
		Elapsed:   elapsed,
		Timestamp: o.opts.now(),
	}
	for _, h := range o.opts.handlers {
		h.OnFinish(event)
	}
}
