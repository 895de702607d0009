package host

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestButtons_ClearedAfterTick(t *testing.T) {
	buttons := NewButtons()
	app := NewApp(WithInput(buttons))

	seen := 0
	app.AddSystem(func(time.Duration) {
		if AnyJustPressed(app.Input(), GestureEscape, GesturePrimary) {
			seen++
		}
	})

	buttons.Press(GesturePrimary)
	app.Update(0)
	app.Update(0)

	if seen != 1 {
		t.Errorf("press seen %d times, want 1", seen)
	}
}

func TestAnyJustPressed_NilInput(t *testing.T) {
	if AnyJustPressed(nil, GestureEscape) {
		t.Error("AnyJustPressed(nil) = true")
	}
}

func TestGesture_String(t *testing.T) {
	tests := []struct {
		g    Gesture
		want string
	}{
		{GestureEscape, "escape"},
		{GesturePrimary, "primary"},
		{GestureSecondary, "secondary"},
		{Gesture(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.g.String(); got != tt.want {
			t.Errorf("Gesture(%d).String() = %s, want %s", tt.g, got, tt.want)
		}
	}
}

func TestApp_RunStopsOnExit(t *testing.T) {
	app := NewApp()
	app.AddSystem(func(time.Duration) {
		if app.Frame() >= 2 {
			app.RequestExit()
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.Run(ctx, time.Millisecond); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !app.ExitRequested() {
		t.Error("ExitRequested() = false")
	}
}

func TestApp_RunCancelled(t *testing.T) {
	app := NewApp()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := app.Run(ctx, time.Millisecond); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
