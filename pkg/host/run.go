package host

import (
	"context"
	"time"

	"github.com/bft-labs/introscreen/pkg/log"
)

// DefaultTickInterval is the interval used by Run when none is given (~60 Hz).
const DefaultTickInterval = 16 * time.Millisecond

// Run drives Update from a ticker until the context is cancelled or an exit
// is requested. Each tick receives the wall-clock time elapsed since the
// previous one. Returns nil on a requested exit and ctx.Err() on cancellation.
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.Settle()
	last := time.Now()

	a.logger.Debug("host loop started", log.Duration("interval", interval))

	for {
		if a.exit {
			a.logger.Debug("host loop stopped", log.Uint64("frames", a.frame))
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			a.Update(now.Sub(last))
			last = now
		}
	}
}
