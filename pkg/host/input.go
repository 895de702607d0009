package host

// Gesture is an abstract user action the host can detect.
type Gesture int

const (
	// GestureEscape is the cancel/back action (Escape key).
	GestureEscape Gesture = iota
	// GesturePrimary is the primary confirm action (Space key, main button).
	GesturePrimary
	// GestureSecondary is the secondary confirm action (Enter key).
	GestureSecondary
)

// String returns a human-readable representation of the gesture.
func (g Gesture) String() string {
	switch g {
	case GestureEscape:
		return "escape"
	case GesturePrimary:
		return "primary"
	case GestureSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Input answers whether a gesture was triggered during the current tick.
type Input interface {
	JustPressed(g Gesture) bool
}

// AnyJustPressed reports whether any of the gestures was triggered.
func AnyJustPressed(in Input, gestures ...Gesture) bool {
	if in == nil {
		return false
	}
	for _, g := range gestures {
		if in.JustPressed(g) {
			return true
		}
	}
	return false
}

// Buttons is an Input fed by the host's event source. Presses recorded
// between two ticks are visible during the next tick and cleared after it.
type Buttons struct {
	pressed map[Gesture]bool
}

// NewButtons creates an empty Buttons input.
func NewButtons() *Buttons {
	return &Buttons{pressed: make(map[Gesture]bool)}
}

// Press records a gesture for the next tick.
func (b *Buttons) Press(g Gesture) {
	b.pressed[g] = true
}

// JustPressed implements Input.
func (b *Buttons) JustPressed(g Gesture) bool {
	return b.pressed[g]
}

// Clear forgets all recorded presses. App.Update calls it after the systems
// of a tick have run.
func (b *Buttons) Clear() {
	clear(b.pressed)
}
