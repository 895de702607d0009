// Package readywatcher resolves a Dynamic intro screen from marker files.
// An external process signals success by creating the ready file, failure by
// creating the failed file (its content is logged as the reason), and may
// report intermediate progress by writing "<fraction> <stage>" to the
// progress file.
package readywatcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/introscreen/pkg/introscreen"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
	"github.com/bft-labs/introscreen/pkg/log"
)

// Default marker file names.
const (
	DefaultReadyFile    = "ready"
	DefaultFailFile     = "failed"
	DefaultProgressFile = "progress"
)

// ErrNoProgress is returned by Initialize when no progress handle was given.
var ErrNoProgress = errors.New("readywatcher: progress handle is required")

// Plugin watches a directory for marker files and reports them to a
// Progress handle.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	dir           string
	readyFile     string
	failFile      string
	progressFile  string
	debounceDelay time.Duration

	// Runtime state
	progress *introscreen.Progress
	logger   log.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// Config holds configuration options for the ready watcher plugin.
type Config struct {
	// Dir is the directory holding the marker files. An empty Dir disables
	// the plugin.
	Dir string

	// ReadyFile is the name of the success marker.
	// Default: "ready"
	ReadyFile string

	// FailFile is the name of the failure marker.
	// Default: "failed"
	FailFile string

	// ProgressFile is the name of the optional progress file.
	// Default: "progress"
	ProgressFile string

	// DebounceDelay is the delay to wait after a file change before reading.
	// Default: 50 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults and no directory.
func DefaultConfig() Config {
	return Config{
		ReadyFile:     DefaultReadyFile,
		FailFile:      DefaultFailFile,
		ProgressFile:  DefaultProgressFile,
		DebounceDelay: 50 * time.Millisecond,
	}
}

// New creates a new ready watcher plugin reporting to progress.
func New(cfg Config, progress *introscreen.Progress) *Plugin {
	if cfg.ReadyFile == "" {
		cfg.ReadyFile = DefaultReadyFile
	}
	if cfg.FailFile == "" {
		cfg.FailFile = DefaultFailFile
	}
	if cfg.ProgressFile == "" {
		cfg.ProgressFile = DefaultProgressFile
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 50 * time.Millisecond
	}

	return &Plugin{
		dir:           cfg.Dir,
		readyFile:     cfg.ReadyFile,
		failFile:      cfg.FailFile,
		progressFile:  cfg.ProgressFile,
		debounceDelay: cfg.DebounceDelay,
		progress:      progress,
		logger:        log.NewNoopLogger(),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "readywatcher"
}

// Initialize starts watching the directory and reads the markers already
// present.
func (p *Plugin) Initialize(ctx context.Context, cfg introscreen.PluginConfig) error {
	if cfg.Logger != nil {
		p.logger = cfg.Logger
	}
	if p.progress == nil {
		return ErrNoProgress
	}
	if p.dir == "" {
		p.logger.Warn("ready watcher disabled: no directory configured")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(p.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", p.dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("ready watcher started", log.String("dir", p.dir))

	p.scan()
	if cfg.Screen != nil {
		// Progress is reset between runs, so markers left on disk are read
		// again every time the screen starts running.
		cfg.Screen.Lifecycle().OnEnter(lifecycle.Running, func() {
			if watchCtx.Err() == nil {
				p.scan()
			}
		})
	}

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !p.isMarker(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceScan(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("ready watcher: watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceScan(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.scan()
	})
}

func (p *Plugin) isMarker(name string) bool {
	return name == p.readyFile || name == p.failFile || name == p.progressFile
}

// scan reads the markers and reports to the progress handle. Success takes
// precedence over failure when both markers exist.
func (p *Plugin) scan() {
	if exists(filepath.Join(p.dir, p.readyFile)) {
		if p.progress.Complete() {
			p.logger.Info("ready marker found")
		}
		return
	}

	if reason, err := os.ReadFile(filepath.Join(p.dir, p.failFile)); err == nil {
		if p.progress.Fail() {
			p.logger.Warn("failure marker found",
				log.String("reason", strings.TrimSpace(string(reason))),
			)
		}
		return
	}

	data, err := os.ReadFile(filepath.Join(p.dir, p.progressFile))
	if err != nil {
		return
	}
	fraction, stage := parseProgress(string(data))
	p.progress.Report(stage, fraction)
	p.logger.Debug("progress reported",
		log.String("stage", stage),
		log.Float64("fraction", fraction),
	)
}

// parseProgress parses "<fraction> <stage>". Content without a leading
// number is taken as the stage alone.
func parseProgress(content string) (float64, string) {
	content = strings.TrimSpace(content)
	head, rest, _ := strings.Cut(content, " ")
	fraction, err := strconv.ParseFloat(head, 64)
	if err != nil {
		return 0, content
	}
	return fraction, strings.TrimSpace(rest)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Ensure Plugin implements introscreen.Plugin.
var _ introscreen.Plugin = (*Plugin)(nil)
