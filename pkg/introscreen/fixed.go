package introscreen

import (
	"fmt"
	"time"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
	"github.com/bft-labs/introscreen/pkg/log"
)

// DefaultDuration is the duration of a Fixed strategy built with NewFixed.
const DefaultDuration = 1500 * time.Millisecond

// Fixed ends the Running phase after a set duration by requesting a target
// value of a registered host state of type T.
//
// With T equal to the host state type and the target equal to
// Preferences.TransitionTo, this is the plain "show for N seconds" screen.
// The timer restarts every time the lifecycle enters Running.
type Fixed[T comparable] struct {
	timer  *host.Timer
	target T
}

// NewFixed creates a Fixed strategy lasting DefaultDuration.
func NewFixed[T comparable](target T) *Fixed[T] {
	return NewFixedWithDuration(DefaultDuration, target)
}

// NewFixedWithDuration creates a Fixed strategy lasting d.
func NewFixedWithDuration[T comparable](d time.Duration, target T) *Fixed[T] {
	return &Fixed[T]{
		timer:  host.NewTimer(d),
		target: target,
	}
}

// Target returns the value requested when the timer expires.
func (f *Fixed[T]) Target() T {
	return f.target
}

// Duration returns the configured duration.
func (f *Fixed[T]) Duration() time.Duration {
	return f.timer.Duration()
}

// Remaining returns the time left in the current run.
func (f *Fixed[T]) Remaining() time.Duration {
	return f.timer.Remaining()
}

// Fraction returns the elapsed share of the duration in [0, 1].
func (f *Fixed[T]) Fraction() float64 {
	return f.timer.Fraction()
}

// Tick advances the timer and reports whether it expired on this tick.
func (f *Fixed[T]) Tick(delta time.Duration) bool {
	return f.timer.Tick(delta)
}

// Reset rewinds the timer.
func (f *Fixed[T]) Reset() {
	f.timer.Reset()
}

// ConfigureDuration implements DurationStrategy.
func (f *Fixed[T]) ConfigureDuration(ctx Context) error {
	states, ok := host.StateOf[T](ctx.App())
	if !ok {
		return fmt.Errorf("%w: %T", ErrStateNotRegistered, f.target)
	}

	ctx.Lifecycle().OnEnter(lifecycle.Running, f.Reset)
	ctx.AddRunningSystem(func(delta time.Duration) {
		if !f.Tick(delta) {
			return
		}
		ctx.Logger().Debug("fixed duration elapsed",
			log.Duration("duration", f.Duration()),
			log.Any("target", f.target),
		)
		states.Set(f.target)
	})
	return nil
}
