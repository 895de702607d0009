package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/introscreen"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
)

type screen int

const (
	splash screen = iota
	menu
)

func TestPlugin_RegisterAndUnregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(Config{Registerer: reg})

	require.NoError(t, p.Initialize(context.Background(), introscreen.PluginConfig{}))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.state.WithLabelValues("Idle")))

	// A second plugin on the same registry collides.
	other := New(Config{Registerer: reg})
	require.Error(t, other.Initialize(context.Background(), introscreen.PluginConfig{}))

	require.NoError(t, p.Shutdown(context.Background()))
	require.NoError(t, other.Initialize(context.Background(), introscreen.PluginConfig{}))
}

func TestPlugin_Events(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(Config{Registerer: reg, Namespace: "test"})
	require.NoError(t, p.Initialize(context.Background(), introscreen.PluginConfig{}))

	p.OnStateChange(introscreen.StateChangeEvent{Previous: lifecycle.Idle, Current: lifecycle.Loading})
	p.OnStateChange(introscreen.StateChangeEvent{Previous: lifecycle.Loading, Current: lifecycle.Running})
	p.OnSkip(introscreen.SkipEvent{Gesture: host.GestureEscape})
	p.OnFinish(introscreen.FinishEvent{Outcome: introscreen.OutcomeSkipped, Elapsed: 800 * time.Millisecond})

	assert.Equal(t, 1.0, testutil.ToFloat64(p.transitions.WithLabelValues("Loading", "Running")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.state.WithLabelValues("Running")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.state.WithLabelValues("Idle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.skips.WithLabelValues("escape")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.runs.WithLabelValues("skipped")))
	assert.Equal(t, 1, testutil.CollectAndCount(p.duration))
}

func TestWithMetrics_Orchestrator(t *testing.T) {
	reg := prometheus.NewRegistry()
	app := host.NewApp()
	screens, err := host.NewState(app, splash)
	require.NoError(t, err)

	orc, err := introscreen.New(introscreen.Preferences[screen]{
		RunAt:        splash,
		TransitionTo: menu,
		Duration:     introscreen.NewFixedWithDuration(time.Second, menu),
		UI:           introscreen.NoDisplay{},
	}, introscreen.OnFailureContinue{}, WithMetrics(Config{Registerer: reg}))
	require.NoError(t, err)
	require.NoError(t, orc.Install(context.Background(), app))

	app.Update(0)
	app.Update(time.Second)
	require.True(t, screens.Is(menu))

	count, err := testutil.GatherAndCount(reg, "introscreen_runs_total", "introscreen_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count, "one run series and three transition series")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `introscreen_runs_total{outcome="completed"} 1`)

	require.NoError(t, orc.Shutdown(context.Background()))
}
