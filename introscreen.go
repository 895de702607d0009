// Package introscreen is the short import path for the intro screen
// orchestrator in pkg/introscreen.
//
// Example usage:
//
//	app := host.NewApp(host.WithInput(buttons))
//	screens, _ := host.NewState(app, Splash)
//
//	orc, err := introscreen.New(introscreen.Preferences[Screen]{
//	    RunAt:        Splash,
//	    TransitionTo: Menu,
//	    SkipOnInput:  true,
//	    Duration:     introscreen.NewFixed(Menu),
//	    UI:           introscreen.NoDisplay{},
//	}, introscreen.OnFailureContinue{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := orc.Install(ctx, app); err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Run(ctx, 0); err != nil {
//	    log.Fatal(err)
//	}
package introscreen

import (
	"time"

	core "github.com/bft-labs/introscreen/pkg/introscreen"
)

// Preferences configures an intro screen sequence.
type Preferences[S comparable] = core.Preferences[S]

// Orchestrator drives the intro screen lifecycle inside a host app.
type Orchestrator[S comparable] = core.Orchestrator[S]

// Option configures an Orchestrator.
type Option = core.Option

// Content is what the intro screen shows.
type Content = core.Content

// Outcome is how a run ended.
type Outcome = core.Outcome

// OnFailureContinue requests the target state as soon as the run fails.
type OnFailureContinue = core.OnFailureContinue

// OnFailureCloseWindow requests application exit as soon as the run fails.
type OnFailureCloseWindow = core.OnFailureCloseWindow

// NoDisplay is a display that draws nothing.
type NoDisplay = core.NoDisplay

// New creates an orchestrator. Install it into a host app to start it.
func New[S comparable](prefs Preferences[S], failure core.FailureManager, opts ...Option) (*Orchestrator[S], error) {
	return core.New(prefs, failure, opts...)
}

// NewFixed returns a duration strategy that requests target after the
// default duration.
func NewFixed[T comparable](target T) *core.Fixed[T] {
	return core.NewFixed(target)
}

// NewFixedWithDuration returns a duration strategy that requests target
// after d.
func NewFixedWithDuration[T comparable](d time.Duration, target T) *core.Fixed[T] {
	return core.NewFixedWithDuration(d, target)
}

// NewDynamic returns a duration strategy driven by an external process,
// failing the run once max elapsed.
func NewDynamic(max time.Duration) *core.Dynamic {
	return core.NewDynamic(max)
}

// Version is the version of the orchestrator package.
const Version = core.Version
