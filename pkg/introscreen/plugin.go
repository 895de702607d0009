package introscreen

import (
	"context"
	"errors"
	"fmt"

	"github.com/bft-labs/introscreen/pkg/log"
)

// Plugin extends the orchestrator with optional behavior that lives outside
// the host tick, such as file watchers or metrics exporters.
type Plugin interface {
	// Name returns the plugin identifier.
	Name() string

	// Initialize is called once at the end of Install. Background work
	// started here must stop when ctx is cancelled or Shutdown is called.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and waits for its background work.
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to plugins on initialization.
type PluginConfig struct {
	// Screen is the installed orchestrator.
	Screen Context

	// Logger is scoped to the plugin.
	Logger log.Logger
}

// WithPlugin adds a plugin. Plugins are initialized in the order they were
// added and shut down in reverse order.
func WithPlugin(p Plugin) Option {
	return func(o *options) {
		if p != nil {
			o.plugins = append(o.plugins, p)
		}
	}
}

func (o *Orchestrator[S]) initializePlugins(ctx context.Context) error {
	for i, p := range o.opts.plugins {
		cfg := PluginConfig{
			Screen: o,
			Logger: o.logger.With(log.String("plugin", p.Name())),
		}
		if err := p.Initialize(ctx, cfg); err != nil {
			// Roll back the plugins that already started.
			o.shutdownPlugins(ctx, o.opts.plugins[:i])
			return fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
		o.logger.Debug("plugin initialized", log.String("plugin", p.Name()))
	}
	return nil
}

func (o *Orchestrator[S]) shutdownPlugins(ctx context.Context, plugins []Plugin) error {
	var errs []error
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			o.logger.Warn("plugin shutdown failed", log.String("plugin", p.Name()), log.Err(err))
			errs = append(errs, fmt.Errorf("shutdown plugin %s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Shutdown stops all plugins. The host app keeps running; call it once the
// host loop has returned.
func (o *Orchestrator[S]) Shutdown(ctx context.Context) error {
	if o.app == nil {
		return nil
	}
	return o.shutdownPlugins(ctx, o.opts.plugins)
}
