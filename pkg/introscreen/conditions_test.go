package introscreen

import (
	"testing"
	"time"
)

func TestConditions(t *testing.T) {
	h := newTestHost(t)
	dyn := NewDynamic(time.Second)

	var loading, running, failure, started int
	ui := DisplayFunc(func(ctx Context) error {
		app := ctx.App()
		app.AddSystem(func(time.Duration) { loading++ }, WhileLoading(ctx))
		app.AddSystem(func(time.Duration) { running++ }, WhileRunning(ctx))
		app.AddSystem(func(time.Duration) { failure++ }, WhileFailure(ctx))
		app.AddSystem(func(time.Duration) { started++ }, StartedRunning(ctx))
		return nil
	})

	prefs := dynamicPrefs(dyn)
	prefs.UI = ui
	h.install(t, prefs, OnFailureFunc(func(Context) {}))

	h.app.Update(0)
	h.app.Update(16 * time.Millisecond)
	dyn.Progress().Fail()
	h.app.Update(16 * time.Millisecond)
	h.app.Update(16 * time.Millisecond)

	if loading != 0 {
		t.Errorf("loading = %d, want 0 (Loading settles straight into Running)", loading)
	}
	if running != 2 {
		t.Errorf("running = %d, want 2", running)
	}
	if started != 1 {
		t.Errorf("started = %d, want 1", started)
	}
	if failure != 1 {
		t.Errorf("failure = %d, want 1", failure)
	}
}
