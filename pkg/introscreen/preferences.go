package introscreen

import (
	"fmt"
	"strings"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
	"github.com/bft-labs/introscreen/pkg/log"
)

// Context is the narrow view of an installed orchestrator handed to duration
// strategies, displays and failure managers while they register their logic.
type Context interface {
	// App returns the host app the orchestrator is installed into.
	App() *host.App

	// Lifecycle returns the lifecycle state.
	Lifecycle() *host.State[lifecycle.State]

	// Logger returns the logger of the current run.
	Logger() log.Logger

	// Display returns the configured display delegate.
	Display() Display

	// SkipOnInput reports whether the skip gate is enabled.
	SkipOnInput() bool

	// AddRunningSystem registers a system that only runs while the
	// lifecycle is Running. Duration strategies must use it for all of
	// their periodic logic.
	AddRunningSystem(sys host.System, conditions ...host.Condition)

	// ClaimLoading tells the orchestrator that a delegate drives the
	// Loading -> Running transition. Without a claim Loading completes
	// immediately.
	ClaimLoading()

	// OnExitRunAt registers fn to run whenever the host leaves the run state.
	OnExitRunAt(fn func())

	// Succeed requests the host transition to the configured target state.
	Succeed()

	// Fail requests the Failure lifecycle state.
	Fail()

	// Exit requests application termination.
	Exit()
}

// DurationStrategy decides when the Running phase ends and in which outcome.
// ConfigureDuration is called exactly once, when the orchestrator is installed.
type DurationStrategy interface {
	ConfigureDuration(ctx Context) error
}

// Display presents the intro screen. ConfigureUI is called once at install
// time and should register whatever is needed to show the screen while the
// lifecycle is Running and to clean up when it leaves Running.
type Display interface {
	ConfigureUI(ctx Context) error
}

// Notifier shows a short textual notice, such as a failure message.
type Notifier interface {
	ShowMessage(msg string)
	ClearMessage()
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(ctx Context) error

// ConfigureUI implements Display.
func (f DisplayFunc) ConfigureUI(ctx Context) error { return f(ctx) }

// NoDisplay is a Display that draws nothing. Useful for headless hosts.
type NoDisplay struct{}

// ConfigureUI implements Display.
func (NoDisplay) ConfigureUI(Context) error { return nil }

// Displays configures several displays in order, for example an asset loader
// followed by the widget that draws the loaded assets.
type Displays []Display

// ConfigureUI implements Display.
func (d Displays) ConfigureUI(ctx Context) error {
	for i, display := range d {
		if display == nil {
			continue
		}
		if err := display.ConfigureUI(ctx); err != nil {
			return fmt.Errorf("display %d: %w", i, err)
		}
	}
	return nil
}

// ShowMessage forwards to every display that implements Notifier.
func (d Displays) ShowMessage(msg string) {
	for _, display := range d {
		if n, ok := display.(Notifier); ok {
			n.ShowMessage(msg)
		}
	}
}

// ClearMessage forwards to every display that implements Notifier.
func (d Displays) ClearMessage() {
	for _, display := range d {
		if n, ok := display.(Notifier); ok {
			n.ClearMessage()
		}
	}
}

// Content is what an intro screen shows: an optional background, a required
// icon reference and a required label. How each is drawn is up to the display.
type Content struct {
	Background string
	Icon       string
	Label      string
}

// HasBackground reports whether a background was configured.
func (c Content) HasBackground() bool {
	return strings.TrimSpace(c.Background) != ""
}

// Validate checks that the required pieces are present.
func (c Content) Validate() error {
	if strings.TrimSpace(c.Icon) == "" {
		return fmt.Errorf("%w: icon is required", ErrInvalidContent)
	}
	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidContent)
	}
	return nil
}

// Preferences configures an intro screen sequence. It is copied into the
// orchestrator on construction and never mutated afterwards.
//
// RunAt and TransitionTo should differ; equal values prevent forward
// progress but are not rejected.
type Preferences[S comparable] struct {
	// RunAt is the host state during which the sequence is active.
	RunAt S

	// TransitionTo is the host state requested on success or skip.
	TransitionTo S

	// SkipOnInput enables the skip gate while Running.
	SkipOnInput bool

	// Duration decides when Running ends.
	Duration DurationStrategy

	// UI presents the screen.
	UI Display
}

// Validate checks the preferences for errors.
func (p Preferences[S]) Validate() error {
	if p.Duration == nil {
		return fmt.Errorf("%w: duration strategy is required", ErrInvalidPreferences)
	}
	if p.UI == nil {
		return fmt.Errorf("%w: display is required", ErrInvalidPreferences)
	}
	return nil
}
