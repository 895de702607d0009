package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/introscreen"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
)

// AssetSource resolves content references to loaded data.
// assetloader.Bundle implements it.
type AssetSource interface {
	Get(name string) ([]byte, bool)
}

// Screen draws the intro screen content in the terminal. It is shown while
// the lifecycle is Running, a spinner is drawn while Loading and the failure
// message while in Failure.
type Screen struct {
	content  introscreen.Content
	theme    Theme
	styles   styles
	assets   AssetSource
	progress func() float64
	bar      progress.Model

	lifecycle *host.State[lifecycle.State]
	skipHint  bool
	visible   bool
	message   string
}

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithTheme sets the color palette.
func WithTheme(theme Theme) ScreenOption {
	return func(s *Screen) {
		s.theme = theme
	}
}

// WithAssets resolves the background and icon references through src. A
// reference with no loaded data is drawn as is.
func WithAssets(src AssetSource) ScreenOption {
	return func(s *Screen) {
		s.assets = src
	}
}

// WithProgress draws a progress bar fed by fn, which must return a value in
// [0, 1].
func WithProgress(fn func() float64) ScreenOption {
	return func(s *Screen) {
		s.progress = fn
	}
}

// NewScreen creates a Screen showing content.
func NewScreen(content introscreen.Content, opts ...ScreenOption) *Screen {
	s := &Screen{
		content: content,
		theme:   DefaultTheme(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.styles = s.theme.styles()
	s.bar = progress.New(
		progress.WithSolidFill(s.theme.Accent),
		progress.WithoutPercentage(),
		progress.WithWidth(30),
	)
	return s
}

// ConfigureUI implements introscreen.Display.
func (s *Screen) ConfigureUI(ctx introscreen.Context) error {
	if err := s.content.Validate(); err != nil {
		return err
	}
	if err := s.theme.Validate(); err != nil {
		return err
	}

	s.lifecycle = ctx.Lifecycle()
	s.skipHint = ctx.SkipOnInput()
	s.lifecycle.OnEnter(lifecycle.Running, func() { s.visible = true })
	s.lifecycle.OnExit(lifecycle.Running, func() { s.visible = false })
	return nil
}

// ShowMessage implements introscreen.Notifier.
func (s *Screen) ShowMessage(msg string) {
	s.message = msg
}

// ClearMessage implements introscreen.Notifier.
func (s *Screen) ClearMessage() {
	s.message = ""
}

// Visible reports whether the intro content is displayed.
func (s *Screen) Visible() bool {
	return s.visible
}

// Message returns the message currently shown.
func (s *Screen) Message() string {
	return s.message
}

func (s *Screen) state() lifecycle.State {
	if s.lifecycle == nil {
		return lifecycle.Idle
	}
	return s.lifecycle.Get()
}

// Render draws the screen centered in a width x height area. It returns an
// empty string when there is nothing to draw.
func (s *Screen) Render(width, height int, spinner string) string {
	var body string
	switch {
	case s.visible:
		body = s.renderContent()
	case s.state() == lifecycle.Loading:
		body = spinner + " " + s.styles.hint.UnsetMarginTop().Render("Loading")
	case s.state() == lifecycle.Failure:
		msg := s.message
		if msg == "" {
			msg = "Startup failed"
		}
		body = s.styles.message.Render(msg)
	default:
		return ""
	}

	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *Screen) renderContent() string {
	var parts []string
	if s.content.HasBackground() {
		parts = append(parts, s.styles.background.Render(s.resolve(s.content.Background)))
	}
	parts = append(parts,
		s.styles.icon.Render(s.resolve(s.content.Icon)),
		s.styles.label.Render(s.content.Label),
	)
	if s.progress != nil {
		parts = append(parts, "", s.bar.ViewAs(clamp(s.progress())))
	}
	if s.skipHint {
		parts = append(parts, s.styles.hint.Render("esc, space or enter to skip"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (s *Screen) resolve(ref string) string {
	if s.assets != nil {
		if data, ok := s.assets.Get(ref); ok {
			return strings.TrimRight(string(data), "\n")
		}
	}
	return ref
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// Ensure Screen implements the introscreen interfaces.
var (
	_ introscreen.Display  = (*Screen)(nil)
	_ introscreen.Notifier = (*Screen)(nil)
)
