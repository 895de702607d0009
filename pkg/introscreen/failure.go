package introscreen

import (
	"fmt"
	"time"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
	"github.com/bft-labs/introscreen/pkg/log"
)

// FailureManager decides what happens once the lifecycle enters Failure.
// ManageFailure is called exactly once, when the orchestrator is installed.
type FailureManager interface {
	ManageFailure(ctx Context) error
}

// OnFailureContinue requests the target host state as soon as the lifecycle
// enters Failure, as if the run had succeeded.
type OnFailureContinue struct{}

// ManageFailure implements FailureManager.
func (OnFailureContinue) ManageFailure(ctx Context) error {
	ctx.Lifecycle().OnEnter(lifecycle.Failure, ctx.Succeed)
	return nil
}

// OnFailureCloseWindow requests application exit as soon as the lifecycle
// enters Failure.
type OnFailureCloseWindow struct{}

// ManageFailure implements FailureManager.
func (OnFailureCloseWindow) ManageFailure(ctx Context) error {
	ctx.Lifecycle().OnEnter(lifecycle.Failure, ctx.Exit)
	return nil
}

// OnFailureContinueWithDelay requests the target host state once Delay has
// elapsed in the Failure state.
type OnFailureContinueWithDelay struct {
	Delay time.Duration
}

// ManageFailure implements FailureManager.
func (m OnFailureContinueWithDelay) ManageFailure(ctx Context) error {
	afterFailure(ctx, m.Delay, "continue", ctx.Succeed)
	return nil
}

// OnFailureCloseWindowWithDelay requests application exit once Delay has
// elapsed in the Failure state.
type OnFailureCloseWindowWithDelay struct {
	Delay time.Duration
}

// ManageFailure implements FailureManager.
func (m OnFailureCloseWindowWithDelay) ManageFailure(ctx Context) error {
	afterFailure(ctx, m.Delay, "close", ctx.Exit)
	return nil
}

// afterFailure runs action once the lifecycle spent delay in Failure. The
// countdown restarts on every entry into Failure and fires once per entry.
func afterFailure(ctx Context, delay time.Duration, name string, action func()) {
	timer := host.NewTimer(delay)
	armed := false

	lc := ctx.Lifecycle()
	lc.OnEnter(lifecycle.Failure, func() {
		timer.Reset()
		armed = true
	})
	lc.OnExit(lifecycle.Failure, func() {
		armed = false
	})
	ctx.App().AddSystem(func(d time.Duration) {
		if !armed || !timer.Tick(d) {
			return
		}
		armed = false
		ctx.Logger().Info("failure delay elapsed",
			log.String("action", name),
			log.Duration("delay", delay),
		)
		action()
	}, lc.In(lifecycle.Failure))
}

// OnFailureShowMessage shows Message while the lifecycle is in Failure and
// clears it on exit. When Notifier is nil the configured display is used,
// provided it implements Notifier.
//
// It does not leave the Failure state on its own; combine it with another
// manager using And.
type OnFailureShowMessage struct {
	Message  string
	Notifier Notifier
}

// ManageFailure implements FailureManager.
func (m OnFailureShowMessage) ManageFailure(ctx Context) error {
	n := m.Notifier
	if n == nil {
		n, _ = ctx.Display().(Notifier)
	}
	if n == nil {
		return fmt.Errorf("%w: show message needs a notifier and the display is not one", ErrInvalidPreferences)
	}

	lc := ctx.Lifecycle()
	lc.OnEnter(lifecycle.Failure, func() {
		n.ShowMessage(m.Message)
	})
	lc.OnExit(lifecycle.Failure, n.ClearMessage)
	return nil
}

// OnFailureLog logs Message at error level every time the lifecycle enters
// Failure.
type OnFailureLog struct {
	Message string
}

// ManageFailure implements FailureManager.
func (m OnFailureLog) ManageFailure(ctx Context) error {
	ctx.Lifecycle().OnEnter(lifecycle.Failure, func() {
		ctx.Logger().Error(m.Message)
	})
	return nil
}

// OnFailureFunc adapts a function called on every entry into Failure.
type OnFailureFunc func(ctx Context)

// ManageFailure implements FailureManager.
func (f OnFailureFunc) ManageFailure(ctx Context) error {
	ctx.Lifecycle().OnEnter(lifecycle.Failure, func() {
		f(ctx)
	})
	return nil
}

// AndManager applies two failure managers, first then second. Both register
// their reactions; on a Failure entry those of first run before those of
// second.
type AndManager struct {
	first  FailureManager
	second FailureManager
}

// And combines two failure managers.
func And(first, second FailureManager) *AndManager {
	return &AndManager{first: first, second: second}
}

// And appends another manager, so that a.And(b).And(c) applies a, b, then c.
func (a *AndManager) And(next FailureManager) *AndManager {
	return And(a, next)
}

// ManageFailure implements FailureManager.
func (a *AndManager) ManageFailure(ctx Context) error {
	if a.first == nil || a.second == nil {
		return fmt.Errorf("%w: both failure managers are required", ErrInvalidPreferences)
	}
	if err := a.first.ManageFailure(ctx); err != nil {
		return err
	}
	return a.second.ManageFailure(ctx)
}
