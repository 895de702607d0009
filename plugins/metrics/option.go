package metrics

import "github.com/bft-labs/introscreen/pkg/introscreen"

// WithMetrics returns an introscreen Option that exports lifecycle, skip and
// run metrics to cfg.Registerer.
//
// Usage:
//
//	reg := prometheus.NewRegistry()
//	orc, err := introscreen.New(prefs, failure,
//	    metrics.WithMetrics(metrics.Config{Registerer: reg}),
//	)
//	http.Handle("/metrics", metrics.Handler(reg))
func WithMetrics(cfg Config) introscreen.Option {
	plugin := New(cfg)
	return introscreen.Combine(
		introscreen.WithPlugin(plugin),
		introscreen.WithEventHandler(plugin),
	)
}
