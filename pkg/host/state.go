package host

import (
	"fmt"
	"reflect"

	"github.com/bft-labs/introscreen/pkg/log"
)

// Transition describes an applied state change.
type Transition[T comparable] struct {
	From T
	To   T
	// Initial is true for the synthetic transition that enters the initial
	// value during the first settle. From equals To in that case.
	Initial bool
}

// State holds the current value of type T and the hooks keyed by value.
type State[T comparable] struct {
	app       *App
	current   T
	next      T
	pending   bool
	entered   bool
	changed   bool
	onEnter   map[T][]func()
	onExit    map[T][]func()
	observers []func(Transition[T])
}

// NewState registers a new state of type T with the given initial value.
// The OnEnter hooks of the initial value run during the next settle.
// Returns ErrStateExists when a State[T] is already registered.
func NewState[T comparable](app *App, initial T) (*State[T], error) {
	s := &State[T]{
		app:     app,
		current: initial,
		onEnter: make(map[T][]func()),
		onExit:  make(map[T][]func()),
	}
	if err := app.register(typeOf[T](), s); err != nil {
		return nil, fmt.Errorf("%w: %s", err, typeOf[T]())
	}
	return s, nil
}

// InitState returns the registered State[T], creating it with initial when
// absent.
func InitState[T comparable](app *App, initial T) *State[T] {
	if s, ok := StateOf[T](app); ok {
		return s
	}
	s, _ := NewState(app, initial)
	return s
}

// StateOf returns the registered State[T].
func StateOf[T comparable](app *App) (*State[T], bool) {
	st, ok := app.states[typeOf[T]()]
	if !ok {
		return nil, false
	}
	s, ok := st.(*State[T])
	return s, ok
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Get returns the current value.
func (s *State[T]) Get() T {
	return s.current
}

// Is reports whether the current value equals v.
func (s *State[T]) Is(v T) bool {
	return s.current == v
}

// Set requests a transition to v. The request is applied between ticks;
// when several requests are made before that, the last one wins.
// Requesting the current value cancels any pending request.
func (s *State[T]) Set(v T) {
	s.next = v
	s.pending = true
}

// Pending returns the requested value, if any.
func (s *State[T]) Pending() (T, bool) {
	return s.next, s.pending
}

// Changed reports whether the state transitioned at the end of the previous
// tick.
func (s *State[T]) Changed() bool {
	return s.changed
}

// OnEnter registers fn to run whenever the state enters v.
func (s *State[T]) OnEnter(v T, fn func()) {
	s.onEnter[v] = append(s.onEnter[v], fn)
}

// OnExit registers fn to run whenever the state leaves v.
func (s *State[T]) OnExit(v T, fn func()) {
	s.onExit[v] = append(s.onExit[v], fn)
}

// Observe registers fn to run after every applied transition, after the
// OnEnter hooks.
func (s *State[T]) Observe(fn func(Transition[T])) {
	s.observers = append(s.observers, fn)
}

// In returns a condition that holds while the current value equals v.
func (s *State[T]) In(v T) Condition {
	return func() bool {
		return s.current == v
	}
}

// Entered returns a condition that holds during the tick following a
// transition into v.
func (s *State[T]) Entered(v T) Condition {
	return func() bool {
		return s.changed && s.current == v
	}
}

func (s *State[T]) settle() bool {
	if !s.entered {
		s.entered = true
		s.changed = true
		s.run(s.onEnter[s.current])
		s.notify(Transition[T]{From: s.current, To: s.current, Initial: true})
		return true
	}

	if !s.pending {
		return false
	}
	next := s.next
	s.pending = false
	if next == s.current {
		return false
	}

	prev := s.current
	s.run(s.onExit[prev])
	s.current = next
	s.changed = true
	s.run(s.onEnter[next])
	s.notify(Transition[T]{From: prev, To: next})

	s.app.logger.Debug("state transition",
		log.String("state", s.name()),
		log.Any("from", prev),
		log.Any("to", next),
	)
	return true
}

func (s *State[T]) clearChanged() {
	s.changed = false
}

func (s *State[T]) name() string {
	return typeOf[T]().String()
}

func (s *State[T]) run(hooks []func()) {
	// Hooks may register further hooks for the same value; iterate a snapshot.
	for _, fn := range append([]func(){}, hooks...) {
		fn()
	}
}

func (s *State[T]) notify(t Transition[T]) {
	for _, fn := range s.observers {
		fn(t)
	}
}
