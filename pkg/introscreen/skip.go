package introscreen

import (
	"time"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/log"
)

// SkipGestures are the gestures that skip the intro screen when the skip
// gate is enabled.
var SkipGestures = []host.Gesture{
	host.GestureEscape,
	host.GesturePrimary,
	host.GestureSecondary,
}

func (o *Orchestrator[S]) installSkipGate() {
	if o.app.Input() == nil {
		o.logger.Warn("skip on input enabled but the host has no input source")
	}
	o.AddRunningSystem(o.pollSkip)
}

func (o *Orchestrator[S]) pollSkip(time.Duration) {
	if o.skipped {
		return
	}
	in := o.app.Input()
	if in == nil {
		return
	}
	for _, g := range SkipGestures {
		if in.JustPressed(g) {
			o.skip(g)
			return
		}
	}
}

func (o *Orchestrator[S]) skip(g host.Gesture) {
	o.skipped = true
	elapsed := o.app.Elapsed() - o.runStart
	o.runLogger.Info("intro screen skipped",
		log.Stringer("gesture", g),
		log.Duration("elapsed", elapsed),
	)

	event := SkipEvent{
		RunID:     o.runID,
		Gesture:   g,
		Elapsed:   elapsed,
		Timestamp: o.opts.now(),
	}
	for _, h := range o.opts.handlers {
		h.OnSkip(event)
	}
	o.Succeed()
}
