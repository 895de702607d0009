package host

import (
	"errors"
	"reflect"
	"time"

	"github.com/bft-labs/introscreen/pkg/log"
)

// Common host errors.
var (
	ErrStateExists = errors.New("host: state already registered")
)

// maxSettlePasses bounds the number of passes used to apply chained state
// requests (a hook requesting another state) between two ticks.
const maxSettlePasses = 32

// System is a unit of per-tick logic. It receives the time elapsed since the
// previous tick.
type System func(delta time.Duration)

// Condition gates a system. A system runs only when all of its conditions
// return true.
type Condition func() bool

// settler is implemented by every State[T] so the App can apply pending
// requests without knowing T.
type settler interface {
	settle() bool
	clearChanged()
	name() string
}

type scheduledSystem struct {
	run        System
	conditions []Condition
}

// App is a cooperative, single-threaded tick host.
// It is not safe for concurrent use; all calls must come from the goroutine
// driving the frame loop.
type App struct {
	systems []scheduledSystem
	states  map[reflect.Type]settler
	order   []settler
	input   Input
	logger  log.Logger

	frame   uint64
	delta   time.Duration
	elapsed time.Duration
	exit    bool
}

// Option configures an App.
type Option func(*App)

// WithInput sets the input source polled by systems.
func WithInput(input Input) Option {
	return func(a *App) {
		a.input = input
	}
}

// WithLogger sets the logger used by the App.
func WithLogger(logger log.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewApp creates an empty App.
func NewApp(opts ...Option) *App {
	a := &App{
		states: make(map[reflect.Type]settler),
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddSystem registers a system that runs every tick while all conditions hold.
// Systems run in registration order.
func (a *App) AddSystem(run System, conditions ...Condition) {
	a.systems = append(a.systems, scheduledSystem{run: run, conditions: conditions})
}

// Input returns the input source, or nil when none was configured.
func (a *App) Input() Input {
	return a.input
}

// Logger returns the logger used by the App.
func (a *App) Logger() log.Logger {
	return a.logger
}

// Delta returns the delta of the current (or last) tick.
func (a *App) Delta() time.Duration {
	return a.delta
}

// Elapsed returns the total time advanced by Update.
func (a *App) Elapsed() time.Duration {
	return a.elapsed
}

// Frame returns the number of completed ticks.
func (a *App) Frame() uint64 {
	return a.frame
}

// RequestExit asks the host to terminate the application.
func (a *App) RequestExit() {
	if !a.exit {
		a.logger.Info("application exit requested", log.Uint64("frame", a.frame))
	}
	a.exit = true
}

// ExitRequested reports whether RequestExit was called.
func (a *App) ExitRequested() bool {
	return a.exit
}

// Update runs one tick.
func (a *App) Update(delta time.Duration) {
	if delta < 0 {
		delta = 0
	}
	a.delta = delta
	a.elapsed += delta

	for _, s := range a.systems {
		if allHold(s.conditions) {
			s.run(delta)
		}
	}

	for _, st := range a.order {
		st.clearChanged()
	}
	if c, ok := a.input.(interface{ Clear() }); ok {
		c.Clear()
	}

	a.Settle()
	a.frame++
}

// Settle applies pending state requests until none remain. Update calls it
// at the end of every tick; hosts may call it directly to apply requests made
// outside a tick (for example before the first frame).
func (a *App) Settle() {
	for pass := 0; pass < maxSettlePasses; pass++ {
		progressed := false
		for _, st := range a.order {
			if st.settle() {
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
	a.logger.Warn("state requests did not settle",
		log.Int("passes", maxSettlePasses),
		log.Uint64("frame", a.frame),
	)
}

func (a *App) register(t reflect.Type, st settler) error {
	if _, exists := a.states[t]; exists {
		return ErrStateExists
	}
	a.states[t] = st
	a.order = append(a.order, st)
	return nil
}

func allHold(conditions []Condition) bool {
	for _, c := range conditions {
		if !c() {
			return false
		}
	}
	return true
}

// All combines conditions with a logical AND.
func All(conditions ...Condition) Condition {
	return func() bool {
		return allHold(conditions)
	}
}

// Not negates a condition.
func Not(c Condition) Condition {
	return func() bool {
		return !c()
	}
}
