// Package introscreen orchestrates an intro (splash) screen inside a host
// app built on package host.
//
// An [Orchestrator] watches one top-level host state. While the host is in
// the configured run state it drives the lifecycle (see package lifecycle)
// from Loading to Running, lets a [DurationStrategy] decide when Running ends
// and hands control to a [FailureManager] when the run fails. Optionally the
// user can skip the screen with the escape, primary or secondary gesture.
//
// # Usage
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
//	    return err
//	}
//	if err := orc.Install(ctx, app); err != nil {
//	    return err
//	}
//
// # Duration strategies
//
// [Fixed] requests a target value of any registered host state after a set
// duration. [Dynamic] waits for an external process to report through its
// [Progress] handle and fails the run once a maximum duration elapsed.
//
// # Failure managers
//
// [OnFailureContinue], [OnFailureCloseWindow] and their delayed variants decide
// where a failed run goes. [OnFailureShowMessage], [OnFailureLog] and
// [OnFailureFunc] add side effects. [And] composes managers in order.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package introscreen
