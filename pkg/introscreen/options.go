package introscreen

import (
	"time"

	"github.com/bft-labs/introscreen/pkg/log"
)

// Option configures an Orchestrator.
type Option func(*options)

type options struct {
	logger   log.Logger
	handlers []EventHandler
	plugins  []Plugin
	now      func() time.Time
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
		now:    time.Now,
	}
}

// WithLogger sets the logger. Run-scoped entries carry a run_id field.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler adds an event handler. Handlers are called in the order
// they were added.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		if handler != nil {
			o.handlers = append(o.handlers, handler)
		}
	}
}

// WithClock sets the wall clock used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Combine groups several options into one, applied in order. Plugins that
// also handle events use it to register both roles with a single option.
func Combine(opts ...Option) Option {
	return func(o *options) {
		for _, opt := range opts {
			if opt != nil {
				opt(o)
			}
		}
	}
}
