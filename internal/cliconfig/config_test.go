package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeFixed {
		t.Errorf("Mode = %v, want %v", cfg.Mode, ModeFixed)
	}
	if cfg.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", cfg.Duration)
	}
	if !cfg.SkipOnInput {
		t.Error("SkipOnInput = false, want true")
	}
	if cfg.OnFailure != FailureContinue {
		t.Errorf("OnFailure = %v, want %v", cfg.OnFailure, FailureContinue)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  bool
		wantMode string
	}{
		{
			name:     "defaults",
			mutate:   func(c *Config) {},
			wantMode: ModeFixed,
		},
		{
			name:     "mode is normalized",
			mutate:   func(c *Config) { c.Mode = " Dynamic " },
			wantMode: ModeDynamic,
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Mode = "forever" },
			wantErr: true,
		},
		{
			name:    "fixed needs a duration",
			mutate:  func(c *Config) { c.Duration = 0 },
			wantErr: true,
		},
		{
			name: "dynamic ignores duration",
			mutate: func(c *Config) {
				c.Mode = ModeDynamic
				c.Duration = 0
			},
			wantMode: ModeDynamic,
		},
		{
			name: "dynamic needs a max wait",
			mutate: func(c *Config) {
				c.Mode = ModeDynamic
				c.MaxWait = 0
			},
			wantErr: true,
		},
		{
			name:    "unknown failure action",
			mutate:  func(c *Config) { c.OnFailure = "retry" },
			wantErr: true,
		},
		{
			name:    "negative failure delay",
			mutate:  func(c *Config) { c.FailureDelay = -time.Second },
			wantErr: true,
		},
		{
			name:    "missing label",
			mutate:  func(c *Config) { c.Label = " " },
			wantErr: true,
		},
		{
			name:    "missing icon",
			mutate:  func(c *Config) { c.Icon = "" },
			wantErr: true,
		},
		{
			name:    "zero tick",
			mutate:  func(c *Config) { c.Tick = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Mode != tt.wantMode {
				t.Errorf("Mode = %v, want %v", cfg.Mode, tt.wantMode)
			}
		})
	}
}

func TestConfigSetter_Precedence(t *testing.T) {
	s := newConfigSetter(map[string]bool{"label": true, "assets": true})

	label := "flag"
	s.setString("label", "file", &label)
	if label != "flag" {
		t.Errorf("label = %v, want flag", label)
	}

	var assets []string
	s.setListFromString("assets", "a.txt", &assets)
	if assets != nil {
		t.Errorf("assets = %v, want nil", assets)
	}

	icon := "default"
	s.setString("icon", "", &icon)
	if icon != "default" {
		t.Errorf("empty value overwrote icon: %v", icon)
	}
}

func TestConfigSetter_SetListFromString(t *testing.T) {
	s := newConfigSetter(map[string]bool{})

	var got []string
	s.setListFromString("assets", " a.txt, ,b.txt ,", &got)
	if len(got) != 2 || got[0] != "a.txt" || got[1] != "b.txt" {
		t.Errorf("assets = %v, want [a.txt b.txt]", got)
	}

	got = []string{"keep"}
	s.setListFromString("assets", " , ", &got)
	if len(got) != 1 || got[0] != "keep" {
		t.Errorf("blank list overwrote assets: %v", got)
	}
}
