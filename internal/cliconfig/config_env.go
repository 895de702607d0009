package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (INTROSCREEN_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("mode", os.Getenv("INTROSCREEN_MODE"), &cfg.Mode)
	s.setString("label", os.Getenv("INTROSCREEN_LABEL"), &cfg.Label)
	s.setString("icon", os.Getenv("INTROSCREEN_ICON"), &cfg.Icon)
	s.setString("background", os.Getenv("INTROSCREEN_BACKGROUND"), &cfg.Background)
	s.setString("theme", os.Getenv("INTROSCREEN_THEME"), &cfg.Theme)
	s.setString("ready-dir", os.Getenv("INTROSCREEN_READY_DIR"), &cfg.ReadyDir)
	s.setString("on-failure", os.Getenv("INTROSCREEN_ON_FAILURE"), &cfg.OnFailure)
	s.setString("failure-message", os.Getenv("INTROSCREEN_FAILURE_MESSAGE"), &cfg.FailureMessage)
	s.setString("log-level", os.Getenv("INTROSCREEN_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv("INTROSCREEN_LOG_FILE"), &cfg.LogFile)
	s.setString("metrics-addr", os.Getenv("INTROSCREEN_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setListFromString("assets", os.Getenv("INTROSCREEN_ASSETS"), &cfg.Assets)

	if err := s.setDuration("duration", os.Getenv("INTROSCREEN_DURATION"), &cfg.Duration); err != nil {
		return err
	}
	if err := s.setDuration("max-wait", os.Getenv("INTROSCREEN_MAX_WAIT"), &cfg.MaxWait); err != nil {
		return err
	}
	if err := s.setDuration("failure-delay", os.Getenv("INTROSCREEN_FAILURE_DELAY"), &cfg.FailureDelay); err != nil {
		return err
	}
	if err := s.setDuration("tick", os.Getenv("INTROSCREEN_TICK"), &cfg.Tick); err != nil {
		return err
	}

	if err := s.setBoolFromString("skip", os.Getenv("INTROSCREEN_SKIP_ON_INPUT"), &cfg.SkipOnInput); err != nil {
		return err
	}
	if err := s.setBoolFromString("headless", os.Getenv("INTROSCREEN_HEADLESS"), &cfg.Headless); err != nil {
		return err
	}

	return nil
}
