// Package tui runs an introscreen host app inside a terminal with Bubble Tea.
//
// The Model advances the host app on every frame tick, turns key presses
// into host gestures and renders a Screen, the terminal introscreen.Display.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bft-labs/introscreen/pkg/host"
)

type tickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model driving a host app.
type Model struct {
	app      *host.App
	buttons  *host.Buttons
	screen   *Screen
	spinner  spinner.Model
	keys     keyMap
	interval time.Duration

	last     time.Time
	width    int
	height   int
	quitting bool

	idleView func() string
	quitWhen func() bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTickInterval sets the frame interval.
// Default: host.DefaultTickInterval
func WithTickInterval(d time.Duration) ModelOption {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithIdleView sets what is drawn when the intro screen is not active.
func WithIdleView(fn func() string) ModelOption {
	return func(m *Model) {
		m.idleView = fn
	}
}

// WithQuitWhen stops the program after the first frame on which fn holds.
func WithQuitWhen(fn func() bool) ModelOption {
	return func(m *Model) {
		m.quitWhen = fn
	}
}

// NewModel creates a model for app. Key presses are recorded in buttons,
// which must be the app's input.
func NewModel(app *host.App, buttons *host.Buttons, screen *Screen, opts ...ModelOption) Model {
	m := Model{
		app:      app,
		buttons:  buttons,
		screen:   screen,
		keys:     defaultKeyMap(),
		interval: host.DefaultTickInterval,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(screen.theme.Accent))),
		),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if g, ok := m.keys.gesture(msg); ok {
			m.buttons.Press(g)
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		var delta time.Duration
		if !m.last.IsZero() {
			delta = now.Sub(m.last)
		}
		m.last = now

		m.app.Update(delta)
		if m.app.ExitRequested() || (m.quitWhen != nil && m.quitWhen()) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tick(m.interval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if out := m.screen.Render(m.width, m.height, m.spinner.View()); out != "" {
		return out
	}
	if m.idleView != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.idleView())
	}
	return ""
}

// Run runs the model in the alternate screen until it quits or ctx is
// cancelled.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
