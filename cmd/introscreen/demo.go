package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/introscreen/internal/cliconfig"
	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/introscreen"
	"github.com/bft-labs/introscreen/pkg/log"
	"github.com/bft-labs/introscreen/plugins/assetloader"
	"github.com/bft-labs/introscreen/plugins/metrics"
	"github.com/bft-labs/introscreen/plugins/readywatcher"
	"github.com/bft-labs/introscreen/plugins/tui"
)

// screen is the top-level state of the demo host.
type screen int

const (
	splash screen = iota
	menu
)

func (s screen) String() string {
	switch s {
	case splash:
		return "splash"
	case menu:
		return "menu"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

const menuView = "Main menu\n\nq to quit"

// demo wires an intro screen into a two-screen host app.
type demo struct {
	cfg     cliconfig.Config
	logger  log.Logger
	app     *host.App
	buttons *host.Buttons
	screens *host.State[screen]
	view    *tui.Screen
	orc     *introscreen.Orchestrator[screen]
	reg     *prometheus.Registry
}

func newDemo(ctx context.Context, cfg cliconfig.Config, logger log.Logger) (*demo, error) {
	d := &demo{
		cfg:     cfg,
		logger:  logger,
		buttons: host.NewButtons(),
	}
	d.app = host.NewApp(host.WithInput(d.buttons), host.WithLogger(logger))

	screens, err := host.NewState(d.app, splash)
	if err != nil {
		return nil, err
	}
	d.screens = screens

	opts := []introscreen.Option{introscreen.WithLogger(logger)}

	var duration introscreen.DurationStrategy
	var progress func() float64
	switch cfg.Mode {
	case cliconfig.ModeDynamic:
		dyn := introscreen.NewDynamic(cfg.MaxWait)
		if cfg.ReadyDir != "" {
			opts = append(opts, readywatcher.WithDefaultReadyWatcher(cfg.ReadyDir, dyn.Progress()))
		} else {
			logger.Warn("dynamic mode without a ready dir, the run fails once max wait elapses",
				log.Duration("max_wait", cfg.MaxWait))
		}
		duration = dyn
		progress = func() float64 { return dyn.Progress().Snapshot().Fraction }
	default:
		fixed := introscreen.NewFixedWithDuration(cfg.Duration, menu)
		duration = fixed
		progress = fixed.Fraction
	}

	screenOpts := []tui.ScreenOption{tui.WithProgress(progress)}
	if cfg.Theme != "" {
		theme, err := tui.LoadTheme(cfg.Theme)
		if err != nil {
			return nil, err
		}
		screenOpts = append(screenOpts, tui.WithTheme(theme))
	}

	var ui introscreen.Display
	if len(cfg.Assets) > 0 {
		assets := make([]assetloader.Asset, 0, len(cfg.Assets))
		for _, path := range cfg.Assets {
			assets = append(assets, assetloader.FileAsset(path))
		}
		loader := assetloader.New(assetloader.DefaultConfig(), assets...)
		d.view = tui.NewScreen(d.content(), append(screenOpts, tui.WithAssets(loader.Bundle()))...)
		ui = introscreen.Displays{loader, d.view}
	} else {
		d.view = tui.NewScreen(d.content(), screenOpts...)
		ui = d.view
	}

	if cfg.MetricsAddr != "" {
		d.reg = prometheus.NewRegistry()
		opts = append(opts, metrics.WithMetrics(metrics.Config{Registerer: d.reg}))
	}

	orc, err := introscreen.New(introscreen.Preferences[screen]{
		RunAt:        splash,
		TransitionTo: menu,
		SkipOnInput:  cfg.SkipOnInput,
		Duration:     duration,
		UI:           ui,
	}, d.failureManager(), opts...)
	if err != nil {
		return nil, err
	}
	if err := orc.Install(ctx, d.app); err != nil {
		return nil, err
	}
	d.orc = orc

	screens.OnEnter(menu, func() {
		logger.Info("menu reached", log.Stringer("outcome", orc.Outcome()))
	})
	return d, nil
}

func (d *demo) content() introscreen.Content {
	return introscreen.Content{
		Background: d.cfg.Background,
		Icon:       d.cfg.Icon,
		Label:      d.cfg.Label,
	}
}

func (d *demo) failureManager() introscreen.FailureManager {
	var action introscreen.FailureManager
	switch {
	case d.cfg.OnFailure == cliconfig.FailureClose && d.cfg.FailureDelay > 0:
		action = introscreen.OnFailureCloseWindowWithDelay{Delay: d.cfg.FailureDelay}
	case d.cfg.OnFailure == cliconfig.FailureClose:
		action = introscreen.OnFailureCloseWindow{}
	case d.cfg.FailureDelay > 0:
		action = introscreen.OnFailureContinueWithDelay{Delay: d.cfg.FailureDelay}
	default:
		action = introscreen.OnFailureContinue{}
	}

	logged := introscreen.OnFailureLog{Message: "intro screen failed"}
	if d.cfg.FailureMessage == "" {
		return introscreen.And(logged, action)
	}
	return introscreen.And(logged, introscreen.OnFailureShowMessage{Message: d.cfg.FailureMessage}).And(action)
}

// run drives the host until the user quits, an exit is requested or ctx is
// cancelled. Headless runs also stop once the menu is reached.
func (d *demo) run(ctx context.Context) error {
	if d.reg != nil {
		stop := d.serveMetrics()
		defer stop()
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.orc.Shutdown(shutdownCtx); err != nil {
			d.logger.Warn("plugin shutdown failed", log.Err(err))
		}
	}()

	if d.cfg.Headless {
		d.app.AddSystem(func(time.Duration) { d.app.RequestExit() }, d.screens.In(menu))
		return d.app.Run(ctx, d.cfg.Tick)
	}

	model := tui.NewModel(d.app, d.buttons, d.view,
		tui.WithTickInterval(d.cfg.Tick),
		tui.WithIdleView(func() string { return menuView }),
	)
	return tui.Run(ctx, model)
}

func (d *demo) serveMetrics() func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(d.reg))
	srv := &http.Server{
		Addr:              d.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		d.logger.Info("serving metrics", log.String("addr", d.cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.logger.Error("metrics server failed", log.Err(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			d.logger.Warn("metrics server shutdown failed", log.Err(err))
		}
	}
}
