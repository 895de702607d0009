package tui

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTheme is returned when a theme has a malformed color.
var ErrInvalidTheme = errors.New("tui: invalid theme")

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme is the color palette of the intro screen. Colors are hex strings
// (#RRGGBB or #RGB).
type Theme struct {
	// Name is the theme's display name.
	Name string `yaml:"name"`
	// Primary colors the label.
	Primary string `yaml:"primary"`
	// Accent colors the icon and the progress bar.
	Accent string `yaml:"accent"`
	// Muted colors the background and hints.
	Muted string `yaml:"muted"`
	// Error colors failure messages.
	Error string `yaml:"error"`
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Primary: "#7D56F4",
		Accent:  "#04B575",
		Muted:   "#626262",
		Error:   "#FF5F87",
	}
}

// Validate checks that every color is a hex color.
func (t Theme) Validate() error {
	colors := []struct {
		field string
		value string
	}{
		{"primary", t.Primary},
		{"accent", t.Accent},
		{"muted", t.Muted},
		{"error", t.Error},
	}
	for _, c := range colors {
		if !hexColor.MatchString(c.value) {
			return fmt.Errorf("%w: %s color %q is not a hex color", ErrInvalidTheme, c.field, c.value)
		}
	}
	return nil
}

// LoadTheme reads a YAML theme file. Colors missing from the file keep their
// default value.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}

	theme := DefaultTheme()
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if err := theme.Validate(); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

type styles struct {
	label      lipgloss.Style
	icon       lipgloss.Style
	background lipgloss.Style
	hint       lipgloss.Style
	message    lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		label:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Primary)).MarginTop(1),
		icon:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		background: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Faint(true),
		hint:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).MarginTop(1),
		message:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Error)),
	}
}
