package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration modes.
const (
	ModeFixed   = "fixed"
	ModeDynamic = "dynamic"
)

// Failure actions.
const (
	FailureContinue = "continue"
	FailureClose    = "close"
)

// Config holds CLI configuration for the introscreen demo.
type Config struct {
	Mode     string
	Duration time.Duration
	MaxWait  time.Duration

	SkipOnInput bool

	Label      string
	Icon       string
	Background string
	Theme      string
	Assets     []string
	ReadyDir   string

	OnFailure      string
	FailureDelay   time.Duration
	FailureMessage string

	Headless    bool
	Tick        time.Duration
	LogLevel    string
	LogFile     string
	MetricsAddr string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeFixed,
		Duration:    1500 * time.Millisecond,
		MaxWait:     10 * time.Second,
		SkipOnInput: true,
		Label:       "introscreen",
		Icon:        "[ introscreen ]",
		OnFailure:   FailureContinue,
		Tick:        16 * time.Millisecond,
		LogLevel:    "info",
	}
}

// Validate checks the configuration for errors and normalizes enum values.
func (c *Config) Validate() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	switch c.Mode {
	case ModeFixed:
		if c.Duration <= 0 {
			return fmt.Errorf("duration must be positive")
		}
	case ModeDynamic:
		if c.MaxWait <= 0 {
			return fmt.Errorf("max-wait must be positive")
		}
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeFixed, ModeDynamic, c.Mode)
	}

	c.OnFailure = strings.ToLower(strings.TrimSpace(c.OnFailure))
	if c.OnFailure != FailureContinue && c.OnFailure != FailureClose {
		return fmt.Errorf("on-failure must be %q or %q, got %q", FailureContinue, FailureClose, c.OnFailure)
	}
	if c.FailureDelay < 0 {
		return fmt.Errorf("failure-delay must not be negative")
	}

	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("label is required")
	}
	if strings.TrimSpace(c.Icon) == "" {
		return fmt.Errorf("icon is required")
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a list value if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}

// setListFromString splits a comma separated list and sets the destination.
func (s *configSetter) setListFromString(flag, value string, dst *[]string) {
	if value == "" || s.changed[flag] {
		return
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	s.setStrings(flag, out, dst)
}
