// Package prompt holds the interaction state machine behind the question:
// a rejection counter that only grows and a one-way acceptance flag.
package prompt

import (
	"errors"
	"sync"
)

// ErrAccepted is returned by Reject once the question has been accepted.
var ErrAccepted = errors.New("prompt: already accepted")

// State is the machine's phase.
type State int

const (
	Questioning State = iota
	Accepted
)

func (s State) String() string {
	switch s {
	case Questioning:
		return "questioning"
	case Accepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// InteractionState is the whole mutable state of the prompt.
type InteractionState struct {
	RejectionCount int
	Accepted       bool
}

func (s InteractionState) State() State {
	if s.Accepted {
		return Accepted
	}
	return Questioning
}

// Observer is notified after every successful transition, in registration
// order, with the state that resulted from it.
type Observer interface {
	Rejected(InteractionState)
	Accepted(InteractionState)
}

// Machine owns an InteractionState. Safe for concurrent use; observers are
// called without the lock held.
type Machine struct {
	mu        sync.Mutex
	state     InteractionState
	observers []Observer
}

func NewMachine() *Machine {
	return &Machine{}
}

// Observe registers o for future transitions.
func (m *Machine) Observe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

func (m *Machine) Snapshot() InteractionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) State() State {
	return m.Snapshot().State()
}

// Reject counts one more refusal. After acceptance it changes nothing and
// returns ErrAccepted.
func (m *Machine) Reject() error {
	m.mu.Lock()
	if m.state.Accepted {
		m.mu.Unlock()
		return ErrAccepted
	}
	m.state.RejectionCount++
	s, obs := m.state, m.observersLocked()
	m.mu.Unlock()

	for _, o := range obs {
		o.Rejected(s)
	}
	return nil
}

// Accept moves to the terminal Accepted state. It reports false, and
// notifies nobody, when already accepted.
func (m *Machine) Accept() bool {
	m.mu.Lock()
	if m.state.Accepted {
		m.mu.Unlock()
		return false
	}
	m.state.Accepted = true
	s, obs := m.state, m.observersLocked()
	m.mu.Unlock()

	for _, o := range obs {
		o.Accepted(s)
	}
	return true
}

func (m *Machine) observersLocked() []Observer {
	return append([]Observer(nil), m.observers...)
}
