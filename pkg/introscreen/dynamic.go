package introscreen

import (
	"sync"
	"time"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
	"github.com/bft-labs/introscreen/pkg/log"
)

// DynamicState is the stage of a Dynamic duration strategy.
type DynamicState int

const (
	// DynamicRunning means the external process has not reported yet.
	DynamicRunning DynamicState = iota
	// DynamicCompleted means the external process reported success.
	DynamicCompleted
	// DynamicFailure means the external process reported failure or the
	// fallback timer expired.
	DynamicFailure
)

// String returns a human-readable representation of the stage.
func (s DynamicState) String() string {
	switch s {
	case DynamicRunning:
		return "running"
	case DynamicCompleted:
		return "completed"
	case DynamicFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ProgressSnapshot is a point-in-time copy of a Progress.
type ProgressSnapshot struct {
	State    DynamicState
	Stage    string
	Fraction float64
}

// Progress is the handle through which an external process reports the
// outcome of a Dynamic run. It is safe for concurrent use.
//
// The first terminal report wins: once Complete or Fail succeeded, further
// reports are ignored until Reset.
type Progress struct {
	mu       sync.Mutex
	state    DynamicState
	stage    string
	fraction float64
	done     chan struct{}
}

// NewProgress creates a Progress in the DynamicRunning state.
func NewProgress() *Progress {
	return &Progress{done: make(chan struct{})}
}

// Complete reports success. It returns false when the run was already resolved.
func (p *Progress) Complete() bool {
	return p.resolve(DynamicCompleted)
}

// Fail reports failure. It returns false when the run was already resolved.
func (p *Progress) Fail() bool {
	return p.resolve(DynamicFailure)
}

func (p *Progress) resolve(state DynamicState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != DynamicRunning {
		return false
	}
	p.state = state
	if state == DynamicCompleted {
		p.fraction = 1
	}
	close(p.done)
	return true
}

// Report records an intermediate stage. Fraction is clamped to [0, 1].
func (p *Progress) Report(stage string, fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != DynamicRunning {
		return
	}
	p.stage = stage
	p.fraction = fraction
}

// State returns the current state.
func (p *Progress) State() DynamicState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Snapshot returns a copy of the current progress.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProgressSnapshot{State: p.state, Stage: p.stage, Fraction: p.fraction}
}

// Done returns a channel closed once the current run is resolved.
func (p *Progress) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Reset puts the progress back in the DynamicRunning state for a new run.
func (p *Progress) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != DynamicRunning {
		p.done = make(chan struct{})
	}
	p.state = DynamicRunning
	p.stage = ""
	p.fraction = 0
}

// Dynamic ends the Running phase when an external process reports through
// Progress, or fails the run once a maximum duration elapsed without a report.
//
// On every Running tick success is checked first, then failure, then the
// fallback timer. A report made in the same tick the fallback expires is
// therefore honored, and the fallback fires at most once per run.
type Dynamic struct {
	fallback *Fixed[DynamicState]
	progress *Progress
	stage    *host.State[DynamicState]
}

// NewDynamic creates a Dynamic strategy that fails after max without a report.
func NewDynamic(max time.Duration) *Dynamic {
	return &Dynamic{
		fallback: NewFixedWithDuration(max, DynamicFailure),
		progress: NewProgress(),
	}
}

// Progress returns the reporting handle. Hand it to the process whose
// completion ends the intro screen.
func (d *Dynamic) Progress() *Progress {
	return d.progress
}

// Fallback returns the fallback timer.
func (d *Dynamic) Fallback() *Fixed[DynamicState] {
	return d.fallback
}

// Stage returns the host state mirroring the progress. Nil before the
// strategy is configured.
func (d *Dynamic) Stage() *host.State[DynamicState] {
	return d.stage
}

// ConfigureDuration implements DurationStrategy.
func (d *Dynamic) ConfigureDuration(ctx Context) error {
	d.stage = host.InitState(ctx.App(), DynamicRunning)

	ctx.Lifecycle().OnEnter(lifecycle.Running, d.fallback.Reset)
	ctx.OnExitRunAt(func() {
		d.progress.Reset()
		d.stage.Set(DynamicRunning)
	})
	ctx.AddRunningSystem(func(delta time.Duration) {
		d.tick(ctx, delta)
	})
	return nil
}

func (d *Dynamic) tick(ctx Context, delta time.Duration) {
	if d.progress.State() == DynamicRunning && d.fallback.Tick(delta) {
		if d.progress.Fail() {
			ctx.Logger().Warn("dynamic duration timed out",
				log.Duration("max", d.fallback.Duration()),
			)
		}
	}

	state := d.progress.State()
	d.stage.Set(state)
	switch state {
	case DynamicCompleted:
		ctx.Logger().Debug("dynamic duration completed")
		ctx.Succeed()
	case DynamicFailure:
		ctx.Logger().Debug("dynamic duration failed")
		ctx.Fail()
	}
}
