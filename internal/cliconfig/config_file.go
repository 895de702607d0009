package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to make TOML and
// YAML files friendly.
type FileConfig struct {
	Mode           string   `toml:"mode" yaml:"mode"`
	Duration       string   `toml:"duration" yaml:"duration"`
	MaxWait        string   `toml:"max_wait" yaml:"max_wait"`
	SkipOnInput    *bool    `toml:"skip_on_input" yaml:"skip_on_input"`
	Label          string   `toml:"label" yaml:"label"`
	Icon           string   `toml:"icon" yaml:"icon"`
	Background     string   `toml:"background" yaml:"background"`
	Theme          string   `toml:"theme" yaml:"theme"`
	Assets         []string `toml:"assets" yaml:"assets"`
	ReadyDir       string   `toml:"ready_dir" yaml:"ready_dir"`
	OnFailure      string   `toml:"on_failure" yaml:"on_failure"`
	FailureDelay   string   `toml:"failure_delay" yaml:"failure_delay"`
	FailureMessage string   `toml:"failure_message" yaml:"failure_message"`
	Headless       *bool    `toml:"headless" yaml:"headless"`
	Tick           string   `toml:"tick" yaml:"tick"`
	LogLevel       string   `toml:"log_level" yaml:"log_level"`
	LogFile        string   `toml:"log_file" yaml:"log_file"`
	MetricsAddr    string   `toml:"metrics_addr" yaml:"metrics_addr"`
}

// LoadFileConfig reads and parses a config file from the given path. Files
// ending in .yaml or .yml are parsed as YAML, anything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.introscreen/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".introscreen", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("mode", fc.Mode, &cfg.Mode)
	s.setString("label", fc.Label, &cfg.Label)
	s.setString("icon", fc.Icon, &cfg.Icon)
	s.setString("background", fc.Background, &cfg.Background)
	s.setString("theme", fc.Theme, &cfg.Theme)
	s.setString("ready-dir", fc.ReadyDir, &cfg.ReadyDir)
	s.setString("on-failure", fc.OnFailure, &cfg.OnFailure)
	s.setString("failure-message", fc.FailureMessage, &cfg.FailureMessage)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setStrings("assets", fc.Assets, &cfg.Assets)

	if err := s.setDuration("duration", fc.Duration, &cfg.Duration); err != nil {
		return err
	}
	if err := s.setDuration("max-wait", fc.MaxWait, &cfg.MaxWait); err != nil {
		return err
	}
	if err := s.setDuration("failure-delay", fc.FailureDelay, &cfg.FailureDelay); err != nil {
		return err
	}
	if err := s.setDuration("tick", fc.Tick, &cfg.Tick); err != nil {
		return err
	}

	s.setBool("skip", fc.SkipOnInput, &cfg.SkipOnInput)
	s.setBool("headless", fc.Headless, &cfg.Headless)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
