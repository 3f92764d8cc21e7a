package prompt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	rejected []InteractionState
	accepted []InteractionState
}

func (r *recorder) Rejected(s InteractionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, s)
}

func (r *recorder) Accepted(s InteractionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted = append(r.accepted, s)
}

func TestMachineStartsQuestioning(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, Questioning, m.State())
	assert.Equal(t, InteractionState{}, m.Snapshot())
}

func TestRejectIncrements(t *testing.T) {
	m := NewMachine()
	rec := &recorder{}
	m.Observe(rec)

	for i := 1; i <= 3; i++ {
		require.NoError(t, m.Reject())
		assert.Equal(t, i, m.Snapshot().RejectionCount)
	}

	require.Len(t, rec.rejected, 3)
	assert.Equal(t, 3, rec.rejected[2].RejectionCount)
	assert.Empty(t, rec.accepted)
}

func TestAcceptIsTerminal(t *testing.T) {
	m := NewMachine()
	rec := &recorder{}
	m.Observe(rec)

	require.NoError(t, m.Reject())
	require.NoError(t, m.Reject())

	assert.True(t, m.Accept())
	assert.Equal(t, Accepted, m.State())

	assert.False(t, m.Accept(), "second accept is a no-op")
	assert.Equal(t, InteractionState{RejectionCount: 2, Accepted: true}, m.Snapshot())
	assert.Len(t, rec.accepted, 1)
}

func TestRejectAfterAccept(t *testing.T) {
	m := NewMachine()
	rec := &recorder{}
	m.Observe(rec)

	require.True(t, m.Accept())
	err := m.Reject()

	require.ErrorIs(t, err, ErrAccepted)
	assert.Equal(t, InteractionState{RejectionCount: 0, Accepted: true}, m.Snapshot())
	assert.Empty(t, rec.rejected)
}

func TestObserversInOrder(t *testing.T) {
	m := NewMachine()
	var order []string
	m.Observe(funcObserver{onReject: func(InteractionState) { order = append(order, "first") }})
	m.Observe(funcObserver{onReject: func(InteractionState) { order = append(order, "second") }})

	require.NoError(t, m.Reject())
	assert.Equal(t, []string{"first", "second"}, order)
}

// Observers may call back into the machine.
func TestObserverReentry(t *testing.T) {
	m := NewMachine()
	var seen InteractionState
	m.Observe(funcObserver{onAccept: func(InteractionState) { seen = m.Snapshot() }})

	m.Accept()
	assert.True(t, seen.Accepted)
}

func TestConcurrentRejects(t *testing.T) {
	m := NewMachine()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Reject()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, m.Snapshot().RejectionCount)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "questioning", Questioning.String())
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "unknown", State(7).String())
}

type funcObserver struct {
	onReject func(InteractionState)
	onAccept func(InteractionState)
}

func (f funcObserver) Rejected(s InteractionState) {
	if f.onReject != nil {
		f.onReject(s)
	}
}

func (f funcObserver) Accepted(s InteractionState) {
	if f.onAccept != nil {
		f.onAccept(s)
	}
}
