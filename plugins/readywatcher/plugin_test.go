package readywatcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/introscreen"
	"github.com/bft-labs/introscreen/pkg/log"
)

func startPlugin(t *testing.T, cfg Config, progress *introscreen.Progress) *Plugin {
	t.Helper()
	plugin := New(cfg, progress)
	err := plugin.Initialize(context.Background(), introscreen.PluginConfig{
		Logger: log.NewNoopLogger(),
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() {
		if err := plugin.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	})
	return plugin
}

func waitForState(t *testing.T, progress *introscreen.Progress, want introscreen.DynamicState) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if progress.State() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("progress state = %v, want %v", progress.State(), want)
}

func testConfig(dir string) Config {
	cfg := DefaultConfig()
	cfg.Dir = dir
	cfg.DebounceDelay = 10 * time.Millisecond
	return cfg
}

func TestPlugin_ReadyMarker(t *testing.T) {
	dir := t.TempDir()
	progress := introscreen.NewProgress()
	startPlugin(t, testConfig(dir), progress)

	if progress.State() != introscreen.DynamicRunning {
		t.Fatalf("state before marker = %v, want running", progress.State())
	}

	if err := os.WriteFile(filepath.Join(dir, DefaultReadyFile), nil, 0644); err != nil {
		t.Fatalf("Failed to create marker: %v", err)
	}
	waitForState(t, progress, introscreen.DynamicCompleted)
}

func TestPlugin_FailMarker(t *testing.T) {
	dir := t.TempDir()
	progress := introscreen.NewProgress()
	startPlugin(t, testConfig(dir), progress)

	if err := os.WriteFile(filepath.Join(dir, DefaultFailFile), []byte("disk full\n"), 0644); err != nil {
		t.Fatalf("Failed to create marker: %v", err)
	}
	waitForState(t, progress, introscreen.DynamicFailure)
}

func TestPlugin_ExistingMarkers(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{DefaultReadyFile, DefaultFailFile} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}

	progress := introscreen.NewProgress()
	startPlugin(t, testConfig(dir), progress)

	// Read synchronously on start; ready wins over failed.
	if progress.State() != introscreen.DynamicCompleted {
		t.Errorf("state = %v, want completed", progress.State())
	}
}

func TestPlugin_ProgressFile(t *testing.T) {
	dir := t.TempDir()
	progress := introscreen.NewProgress()
	startPlugin(t, testConfig(dir), progress)

	if err := os.WriteFile(filepath.Join(dir, DefaultProgressFile), []byte("0.4 loading textures"), 0644); err != nil {
		t.Fatalf("Failed to write progress: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if progress.Snapshot().Stage == "loading textures" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	snap := progress.Snapshot()
	if snap.Stage != "loading textures" || snap.Fraction != 0.4 {
		t.Errorf("Snapshot() = %+v, want loading textures at 0.4", snap)
	}
	if snap.State != introscreen.DynamicRunning {
		t.Errorf("state = %v, want running", snap.State)
	}
}

func TestPlugin_CustomMarkerNames(t *testing.T) {
	dir := t.TempDir()
	progress := introscreen.NewProgress()
	cfg := testConfig(dir)
	cfg.ReadyFile = "done.flag"
	startPlugin(t, cfg, progress)

	if err := os.WriteFile(filepath.Join(dir, DefaultReadyFile), nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if progress.State() != introscreen.DynamicRunning {
		t.Fatalf("default marker name resolved a custom config")
	}

	if err := os.WriteFile(filepath.Join(dir, "done.flag"), nil, 0644); err != nil {
		t.Fatalf("Failed to create marker: %v", err)
	}
	waitForState(t, progress, introscreen.DynamicCompleted)
}

func TestPlugin_Disabled(t *testing.T) {
	plugin := New(DefaultConfig(), introscreen.NewProgress())
	if err := plugin.Initialize(context.Background(), introscreen.PluginConfig{}); err != nil {
		t.Fatalf("Initialize with no dir error = %v, want nil", err)
	}
	if err := plugin.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_MissingDir(t *testing.T) {
	plugin := New(testConfig(filepath.Join(t.TempDir(), "missing")), introscreen.NewProgress())
	if err := plugin.Initialize(context.Background(), introscreen.PluginConfig{}); err == nil {
		t.Error("Initialize on a missing directory should fail")
	}
}

func TestPlugin_NoProgress(t *testing.T) {
	plugin := New(testConfig(t.TempDir()), nil)
	err := plugin.Initialize(context.Background(), introscreen.PluginConfig{})
	if !errors.Is(err, ErrNoProgress) {
		t.Errorf("Initialize() error = %v, want ErrNoProgress", err)
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		in        string
		wantFrac  float64
		wantStage string
	}{
		{"0.5 fonts", 0.5, "fonts"},
		{"1\n", 1, ""},
		{"warming up", 0, "warming up"},
		{"  0.25   shaders and more ", 0.25, "shaders and more"},
	}
	for _, tt := range tests {
		frac, stage := parseProgress(tt.in)
		if frac != tt.wantFrac || stage != tt.wantStage {
			t.Errorf("parseProgress(%q) = %v, %q, want %v, %q", tt.in, frac, stage, tt.wantFrac, tt.wantStage)
		}
	}
}

type screen int

const (
	splash screen = iota
	menu
)

func TestPlugin_RescansOnEveryRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultReadyFile), nil, 0644); err != nil {
		t.Fatalf("Failed to create marker: %v", err)
	}

	app := host.NewApp()
	screens, err := host.NewState(app, splash)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	dyn := introscreen.NewDynamic(time.Second)
	orc, err := introscreen.New(introscreen.Preferences[screen]{
		RunAt:        splash,
		TransitionTo: menu,
		Duration:     dyn,
		UI:           introscreen.NoDisplay{},
	}, introscreen.OnFailureContinue{}, WithReadyWatcher(testConfig(dir), dyn.Progress()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := orc.Install(context.Background(), app); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	t.Cleanup(func() {
		if err := orc.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	})

	for run := 1; run <= 2; run++ {
		app.Update(0)
		app.Update(16 * time.Millisecond)

		if !screens.Is(menu) {
			t.Fatalf("run %d: screen = %v, want menu", run, screens.Get())
		}
		if orc.Outcome() != introscreen.OutcomeCompleted {
			t.Errorf("run %d: Outcome() = %v, want completed", run, orc.Outcome())
		}

		screens.Set(splash)
		app.Settle()
	}
}
