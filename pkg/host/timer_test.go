package host

import (
	"testing"
	"time"
)

func TestTimer_FiresOnce(t *testing.T) {
	timer := NewTimer(100 * time.Millisecond)

	if timer.Tick(99 * time.Millisecond) {
		t.Fatal("Tick() fired early")
	}
	if !timer.Tick(time.Millisecond) {
		t.Fatal("Tick() did not fire at the duration")
	}
	if !timer.Finished() {
		t.Error("Finished() = false after firing")
	}
	if timer.Tick(time.Second) {
		t.Error("Tick() fired twice")
	}
	if timer.Elapsed() != 100*time.Millisecond {
		t.Errorf("Elapsed() = %v, want capped at 100ms", timer.Elapsed())
	}
}

func TestTimer_Reset(t *testing.T) {
	timer := NewTimer(time.Second)
	timer.Tick(2 * time.Second)
	timer.Reset()

	if timer.Finished() || timer.Remaining() != time.Second {
		t.Errorf("after Reset finished = %v remaining = %v", timer.Finished(), timer.Remaining())
	}
}

func TestTimer_ZeroDuration(t *testing.T) {
	timer := NewTimer(-time.Second)
	if timer.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", timer.Duration())
	}
	if timer.Fraction() != 1 {
		t.Errorf("Fraction() = %v, want 1", timer.Fraction())
	}
	if !timer.Tick(0) {
		t.Error("zero duration timer did not fire on first tick")
	}
}
