// Package host provides a minimal single-threaded tick host for embedding
// the intro screen orchestrator.
//
// An [App] owns an ordered list of systems, a set of typed states and an
// optional [Input] source. Each call to [App.Update] runs one logical frame:
//
//  1. every system whose run conditions hold is called with the frame delta,
//     in registration order
//  2. per-frame markers (state "changed" flags, input edges) are cleared
//  3. pending state requests are applied until none remain
//
// State requests never take effect mid-frame, so no two systems observe a
// half-updated state within the same tick.
//
// # States
//
// A [State] holds one comparable value. Requests made with [State.Set] are
// queued (last write wins) and applied between ticks, running the OnExit hooks
// of the old value and the OnEnter hooks of the new one:
//
//	app := host.NewApp()
//	screens, _ := host.NewState(app, ScreenSplash)
//	screens.OnEnter(ScreenMenu, func() { fmt.Println("menu") })
//	screens.Set(ScreenMenu)
//	app.Update(16 * time.Millisecond)
//
// States are indexed by type: at most one State[T] exists per App and it can
// be retrieved with [StateOf].
//
// # Driving
//
// Hosts that own a frame loop call Update themselves. Hosts without one can
// use [App.Run], which ticks on a fixed interval until the context is
// cancelled or [App.RequestExit] is called.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package host
