// Package metrics exports intro screen metrics to Prometheus.
// It counts lifecycle transitions, skips and finished runs, tracks the
// current lifecycle state and observes how long runs last.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/introscreen/pkg/introscreen"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
	"github.com/bft-labs/introscreen/pkg/log"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "introscreen"

// DefaultBuckets are the run duration histogram buckets, in seconds.
var DefaultBuckets = []float64{0.25, 0.5, 1, 1.5, 2, 3, 5, 10, 30}

var states = []lifecycle.State{
	lifecycle.Idle,
	lifecycle.Loading,
	lifecycle.Running,
	lifecycle.Failure,
}

// Config holds configuration options for the metrics plugin.
type Config struct {
	// Registerer receives the collectors.
	// Default: prometheus.DefaultRegisterer
	Registerer prometheus.Registerer

	// Namespace prefixes metric names.
	// Default: "introscreen"
	Namespace string

	// Buckets are the run duration histogram buckets in seconds.
	// Default: DefaultBuckets
	Buckets []float64
}

// Plugin records orchestrator events as Prometheus metrics.
type Plugin struct {
	registerer prometheus.Registerer
	logger     log.Logger

	transitions *prometheus.CounterVec
	skips       *prometheus.CounterVec
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	state       *prometheus.GaugeVec
}

// New creates a metrics plugin. Collectors are registered on Initialize.
func New(cfg Config) *Plugin {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = DefaultBuckets
	}

	return &Plugin{
		registerer: cfg.Registerer,
		logger:     log.NewNoopLogger(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "transitions_total",
			Help:      "Lifecycle transitions by source and destination state.",
		}, []string{"from", "to"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "skips_total",
			Help:      "Intro screens skipped by the user, by gesture.",
		}, []string{"gesture"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "runs_total",
			Help:      "Finished intro screen runs by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "run_duration_seconds",
			Help:      "Host time spent in the intro screen per run.",
			Buckets:   cfg.Buckets,
		}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "state",
			Help:      "Current lifecycle state (1 for the active state).",
		}, []string{"state"}),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "metrics"
}

func (p *Plugin) collectors() map[string]prometheus.Collector {
	return map[string]prometheus.Collector{
		"transitions_total":    p.transitions,
		"skips_total":          p.skips,
		"runs_total":           p.runs,
		"run_duration_seconds": p.duration,
		"state":                p.state,
	}
}

// Initialize registers the collectors.
func (p *Plugin) Initialize(ctx context.Context, cfg introscreen.PluginConfig) error {
	if cfg.Logger != nil {
		p.logger = cfg.Logger
	}

	var registered []prometheus.Collector
	for name, c := range p.collectors() {
		if err := p.registerer.Register(c); err != nil {
			for _, r := range registered {
				p.registerer.Unregister(r)
			}
			return fmt.Errorf("registering %s: %w", name, err)
		}
		registered = append(registered, c)
	}

	p.setState(lifecycle.Idle)
	p.logger.Info("metrics collectors registered")
	return nil
}

// Shutdown unregisters the collectors.
func (p *Plugin) Shutdown(ctx context.Context) error {
	var errs []error
	for name, c := range p.collectors() {
		if !p.registerer.Unregister(c) {
			errs = append(errs, fmt.Errorf("unregistering %s: not registered", name))
		}
	}
	return errors.Join(errs...)
}

// OnStateChange implements introscreen.EventHandler.
func (p *Plugin) OnStateChange(e introscreen.StateChangeEvent) {
	p.transitions.WithLabelValues(e.Previous.String(), e.Current.String()).Inc()
	p.setState(e.Current)
}

// OnSkip implements introscreen.EventHandler.
func (p *Plugin) OnSkip(e introscreen.SkipEvent) {
	p.skips.WithLabelValues(e.Gesture.String()).Inc()
}

// OnFinish implements introscreen.EventHandler.
func (p *Plugin) OnFinish(e introscreen.FinishEvent) {
	p.runs.WithLabelValues(e.Outcome.String()).Inc()
	p.duration.Observe(e.Elapsed.Seconds())
}

func (p *Plugin) setState(current lifecycle.State) {
	for _, s := range states {
		v := 0.0
		if s == current {
			v = 1
		}
		p.state.WithLabelValues(s.String()).Set(v)
	}
}

// Handler returns an http.Handler serving the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Ensure Plugin implements the introscreen interfaces.
var (
	_ introscreen.Plugin       = (*Plugin)(nil)
	_ introscreen.EventHandler = (*Plugin)(nil)
)
