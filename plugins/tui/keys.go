package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bft-labs/introscreen/pkg/host"
)

// keyMap binds terminal keys to host gestures.
type keyMap struct {
	Escape    key.Binding
	Primary   key.Binding
	Secondary key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip"),
		),
		Primary: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "skip"),
		),
		Secondary: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "skip"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// gesture returns the gesture bound to msg.
func (k keyMap) gesture(msg tea.KeyMsg) (host.Gesture, bool) {
	switch {
	case key.Matches(msg, k.Escape):
		return host.GestureEscape, true
	case key.Matches(msg, k.Primary):
		return host.GesturePrimary, true
	case key.Matches(msg, k.Secondary):
		return host.GestureSecondary, true
	default:
		return 0, false
	}
}
