package readywatcher

import "github.com/bft-labs/introscreen/pkg/introscreen"

// WithReadyWatcher returns an introscreen Option that resolves progress from
// marker files dropped in a directory.
//
// Usage:
//
//	dyn := introscreen.NewDynamic(10 * time.Second)
//	orc, err := introscreen.New(prefs, failure,
//	    readywatcher.WithReadyWatcher(readywatcher.Config{
//	        Dir:           "/run/myapp",
//	        DebounceDelay: 50 * time.Millisecond,
//	    }, dyn.Progress()),
//	)
func WithReadyWatcher(cfg Config, progress *introscreen.Progress) introscreen.Option {
	plugin := New(cfg, progress)
	return introscreen.WithPlugin(plugin)
}

// WithDefaultReadyWatcher returns an introscreen Option that watches dir with
// the default marker names ("ready", "failed", "progress").
//
// Usage:
//
//	orc, err := introscreen.New(prefs, failure,
//	    readywatcher.WithDefaultReadyWatcher("/run/myapp", dyn.Progress()))
func WithDefaultReadyWatcher(dir string, progress *introscreen.Progress) introscreen.Option {
	cfg := DefaultConfig()
	cfg.Dir = dir
	return WithReadyWatcher(cfg, progress)
}
