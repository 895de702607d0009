// Package assetloader loads the resources an intro screen needs before it is
// shown. It drives the Loading phase: the lifecycle moves to Running once
// every asset is loaded and to Failure as soon as one of them fails.
package assetloader

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/bft-labs/introscreen/pkg/introscreen"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
	"github.com/bft-labs/introscreen/pkg/log"
)

// Config holds configuration options for the asset loader.
type Config struct {
	// MaxConcurrency bounds the number of assets loaded in parallel.
	// Default: 4
	MaxConcurrency int

	// Timeout bounds a whole load. Zero means no timeout.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{MaxConcurrency: 4}
}

// Loader is an introscreen.Display that loads assets off the host goroutine
// while the lifecycle is Loading. Compose it with the display that draws the
// assets using introscreen.Displays.
type Loader struct {
	assets         []Asset
	maxConcurrency int
	timeout        time.Duration

	bundle *Bundle
	loaded atomic.Int64
	gen    atomic.Uint64

	// Owned by the host goroutine.
	done    chan error
	cancel  context.CancelFunc
	lastErr error
}

// New creates a loader for the given assets.
func New(cfg Config, assets ...Asset) *Loader {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 4
	}
	return &Loader{
		assets:         assets,
		maxConcurrency: cfg.MaxConcurrency,
		timeout:        cfg.Timeout,
		bundle:         newBundle(),
	}
}

// Bundle returns the loaded assets of the current run.
func (l *Loader) Bundle() *Bundle {
	return l.bundle
}

// Fraction returns the share of assets loaded in the current run.
func (l *Loader) Fraction() float64 {
	if len(l.assets) == 0 {
		return 1
	}
	return float64(l.loaded.Load()) / float64(len(l.assets))
}

// Err returns the error of the last failed load, if any.
func (l *Loader) Err() error {
	return l.lastErr
}

// ConfigureUI implements introscreen.Display.
func (l *Loader) ConfigureUI(ctx introscreen.Context) error {
	for i, a := range l.assets {
		if a.Name == "" || a.Load == nil {
			return fmt.Errorf("%w: asset %d needs a name and a load function", introscreen.ErrInvalidPreferences, i)
		}
	}

	ctx.ClaimLoading()

	lc := ctx.Lifecycle()
	lc.OnEnter(lifecycle.Loading, func() {
		l.start(ctx.Logger())
	})
	ctx.App().AddSystem(func(time.Duration) {
		l.poll(ctx)
	}, lc.In(lifecycle.Loading))
	ctx.OnExitRunAt(l.release)
	return nil
}

func (l *Loader) start(logger log.Logger) {
	l.release()
	l.lastErr = nil
	gen := l.gen.Add(1)

	loadCtx, cancel := l.loadContext()
	l.cancel = cancel
	done := make(chan error, 1)
	l.done = done

	logger.Debug("loading assets",
		log.Int("assets", len(l.assets)),
		log.Int("max_concurrency", l.maxConcurrency),
	)

	go func() {
		p := pool.New().
			WithMaxGoroutines(l.maxConcurrency).
			WithErrors().
			WithContext(loadCtx).
			WithCancelOnError().
			WithFirstError()
		for _, a := range l.assets {
			p.Go(func(ctx context.Context) error {
				data, err := a.Load(ctx)
				if err != nil {
					return fmt.Errorf("asset %s: %w", a.Name, err)
				}
				if l.gen.Load() != gen {
					// Released while loading.
					return nil
				}
				l.bundle.put(a.Name, data)
				l.loaded.Add(1)
				return nil
			})
		}
		done <- p.Wait()
	}()
}

// loadContext bounds a load by the configured timeout, if any.
func (l *Loader) loadContext() (context.Context, context.CancelFunc) {
	if l.timeout > 0 {
		return context.WithTimeout(context.Background(), l.timeout)
	}
	return context.WithCancel(context.Background())
}

func (l *Loader) poll(ctx introscreen.Context) {
	if l.done == nil {
		return
	}
	select {
	case err := <-l.done:
		l.done = nil
		if err != nil {
			l.lastErr = fmt.Errorf("%w: %v", introscreen.ErrLoadFailed, err)
			ctx.Logger().Error("asset loading failed", log.Err(err))
			ctx.Fail()
			return
		}
		ctx.Logger().Info("assets loaded", log.Int("assets", l.bundle.Len()))
		ctx.Lifecycle().Set(lifecycle.Running)
	default:
	}
}

// release cancels an in-flight load and drops the loaded assets.
func (l *Loader) release() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen.Add(1)
	l.done = nil
	l.bundle.clear()
	l.loaded.Store(0)
}

// Ensure Loader implements introscreen.Display.
var _ introscreen.Display = (*Loader)(nil)
