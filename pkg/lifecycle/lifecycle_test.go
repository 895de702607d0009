package lifecycle

import (
	"errors"
	"sync"
	"testing"

	"github.com/bft-labs/introscreen/pkg/log"
)

// mockEmitter tracks state change events for testing.
type mockEmitter struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous State
	current  State
	reason   string
}

func (m *mockEmitter) OnStateChange(previous, current State, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChangeEvent{previous, current, reason})
}

func (m *mockEmitter) Events() []stateChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChangeEvent{}, m.events...)
}

func TestNewMachine(t *testing.T) {
	m := NewMachine(nil, nil)

	if m == nil {
		t.Fatal("NewMachine returned nil")
	}
	if m.Current() != Idle {
		t.Errorf("initial state = %v, want Idle", m.Current())
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Idle, "Idle"},
		{Loading, "Loading"},
		{Running, "Running"},
		{Failure, "Failure"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		got := tt.state.String()
		if got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestState_Predicates(t *testing.T) {
	if !Idle.IsIdle() || Idle.IsRunning() {
		t.Error("Idle predicates mismatch")
	}
	if !Loading.IsLoading() || Loading.IsFailure() {
		t.Error("Loading predicates mismatch")
	}
	if !Running.IsRunning() || Running.IsIdle() {
		t.Error("Running predicates mismatch")
	}
	if !Failure.IsFailure() || Failure.IsLoading() {
		t.Error("Failure predicates mismatch")
	}
}

func TestMachine_Record_ValidTransitions(t *testing.T) {
	tests := []struct {
		name       string
		path       []State
		wantReason string
	}{
		{"idle to loading", []State{Idle, Loading}, ReasonLoad},
		{"loading to running", []State{Idle, Loading, Running}, ReasonRun},
		{"loading to failure", []State{Idle, Loading, Failure}, ReasonFail},
		{"running to failure", []State{Idle, Loading, Running, Failure}, ReasonFail},
		{"running to idle", []State{Idle, Loading, Running, Idle}, ReasonReset},
		{"failure to idle", []State{Idle, Loading, Running, Failure, Idle}, ReasonReset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emitter := &mockEmitter{}
			m := NewMachine(log.NewNoopLogger(), emitter)

			var reason string
			for i := 1; i < len(tt.path); i++ {
				var err error
				reason, err = m.Record(tt.path[i-1], tt.path[i])
				if err != nil {
					t.Fatalf("Record(%v, %v) error = %v", tt.path[i-1], tt.path[i], err)
				}
			}

			last := tt.path[len(tt.path)-1]
			if m.Current() != last {
				t.Errorf("Current() = %v, want %v", m.Current(), last)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %s, want %s", reason, tt.wantReason)
			}
			if got := len(emitter.Events()); got != len(tt.path)-1 {
				t.Errorf("got %d events, want %d", got, len(tt.path)-1)
			}
		})
	}
}

func TestMachine_Record_UnexpectedTransition(t *testing.T) {
	tests := []struct {
		name     string
		from, to State
	}{
		{"idle to running", Idle, Running},
		{"idle to failure", Idle, Failure},
		{"failure to running", Failure, Running},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emitter := &mockEmitter{}
			m := NewMachine(nil, emitter)

			_, err := m.Record(tt.from, tt.to)
			if !errors.Is(err, ErrUnexpectedTransition) {
				t.Errorf("Record() error = %v, want ErrUnexpectedTransition", err)
			}
			if m.Current() != tt.to {
				t.Errorf("Current() = %v, want %v", m.Current(), tt.to)
			}
			if len(emitter.Events()) != 1 {
				t.Errorf("unexpected transition was not emitted")
			}
		})
	}
}

func TestMachine_Can(t *testing.T) {
	m := NewMachine(nil, nil)

	if !m.Can(Loading) {
		t.Error("Can(Loading) = false from Idle")
	}
	if m.Can(Running) {
		t.Error("Can(Running) = true from Idle")
	}
	if m.Can(Idle) {
		t.Error("Can(Idle) = true from Idle")
	}

	_, _ = m.Record(Idle, Loading)
	if !m.Can(Running) || !m.Can(Failure) || !m.Can(Idle) {
		t.Error("Loading should allow Running, Failure and Idle")
	}
}

func TestMachine_EmitterReceivesReason(t *testing.T) {
	emitter := &mockEmitter{}
	m := NewMachine(nil, emitter)

	_, _ = m.Record(Idle, Loading)
	_, _ = m.Record(Loading, Running)

	events := emitter.Events()
	want := []stateChangeEvent{
		{Idle, Loading, ReasonLoad},
		{Loading, Running, ReasonRun},
	}
	for i, w := range want {
		if events[i] != w {
			t.Errorf("event[%d] = %+v, want %+v", i, events[i], w)
		}
	}
}
