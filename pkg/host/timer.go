package host

import "time"

// Timer is a once-mode countdown advanced by tick deltas.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	finished bool
}

// NewTimer creates a timer that finishes after d of accumulated ticks.
func NewTimer(d time.Duration) *Timer {
	if d < 0 {
		d = 0
	}
	return &Timer{duration: d}
}

// Tick advances the timer by delta. It returns true exactly once: on the
// tick where the accumulated time first reaches the duration.
func (t *Timer) Tick(delta time.Duration) bool {
	if t.finished {
		return false
	}
	if delta > 0 {
		t.elapsed += delta
	}
	if t.elapsed >= t.duration {
		t.elapsed = t.duration
		t.finished = true
		return true
	}
	return false
}

// Reset rewinds the timer to zero.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
}

// Finished reports whether the timer has expired.
func (t *Timer) Finished() bool {
	return t.finished
}

// Duration returns the configured duration.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Elapsed returns the accumulated time, capped at the duration.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Remaining returns the time left before the timer expires.
func (t *Timer) Remaining() time.Duration {
	return t.duration - t.elapsed
}

// Fraction returns the elapsed share of the duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.duration == 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}
