package introscreen_test

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/introscreen"
)

type Screen int

const (
	Splash Screen = iota
	Menu
)

// ExampleNew shows a splash screen for two seconds, skippable with any of
// the skip gestures.
func ExampleNew() {
	buttons := host.NewButtons()
	app := host.NewApp(host.WithInput(buttons))
	screens, _ := host.NewState(app, Splash)

	orc, err := introscreen.New(introscreen.Preferences[Screen]{
		RunAt:        Splash,
		TransitionTo: Menu,
		SkipOnInput:  true,
		Duration:     introscreen.NewFixedWithDuration(2*time.Second, Menu),
		UI:           introscreen.NoDisplay{},
	}, introscreen.OnFailureContinue{})
	if err != nil {
		fmt.Printf("failed to create orchestrator: %v\n", err)
		return
	}
	if err := orc.Install(context.Background(), app); err != nil {
		fmt.Printf("failed to install: %v\n", err)
		return
	}

	app.Update(0)
	fmt.Println(orc.State())

	buttons.Press(host.GestureEscape)
	app.Update(16 * time.Millisecond)
	fmt.Println(screens.Get() == Menu, orc.Outcome())

	// Output:
	// Running
	// true skipped
}

// ExampleNewDynamic ends the screen when a background job reports.
func ExampleNewDynamic() {
	app := host.NewApp()
	screens, _ := host.NewState(app, Splash)

	dyn := introscreen.NewDynamic(5 * time.Second)
	orc, _ := introscreen.New(introscreen.Preferences[Screen]{
		RunAt:        Splash,
		TransitionTo: Menu,
		Duration:     dyn,
		UI:           introscreen.NoDisplay{},
	}, introscreen.And(
		introscreen.OnFailureLog{Message: "startup job failed"},
		introscreen.OnFailureCloseWindowWithDelay{Delay: 3 * time.Second},
	))
	_ = orc.Install(context.Background(), app)

	app.Update(0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		dyn.Progress().Report("warming caches", 0.5)
		dyn.Progress().Complete()
	}()
	<-done

	app.Update(16 * time.Millisecond)
	fmt.Println(screens.Get() == Menu, orc.Outcome())

	// Output: true completed
}
