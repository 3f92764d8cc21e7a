package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

func TestFakeAfterFunc(t *testing.T) {
	c := NewFake(epoch)
	fired := 0
	c.AfterFunc(100*time.Millisecond, func() { fired++ })
	require.Equal(t, 1, c.Pending())

	c.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, fired)

	c.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, c.Pending())
	assert.Equal(t, epoch.Add(100*time.Millisecond), c.Now())
}

func TestFakeStop(t *testing.T) {
	c := NewFake(epoch)
	timer := c.AfterFunc(time.Second, func() { t.Fatal("stopped timer fired") })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop is a no-op")
	assert.Equal(t, 0, c.Pending())
	c.Advance(2 * time.Second)
}

func TestFakeEvery(t *testing.T) {
	c := NewFake(epoch)
	var times []time.Time
	timer := c.Every(10*time.Millisecond, func() { times = append(times, c.Now()) })

	c.Advance(35 * time.Millisecond)
	require.Len(t, times, 3)
	assert.Equal(t, epoch.Add(30*time.Millisecond), times[2])
	assert.Equal(t, 1, c.Pending())

	timer.Stop()
	c.Advance(time.Second)
	assert.Len(t, times, 3)
}

func TestFakeEveryStopsItself(t *testing.T) {
	c := NewFake(epoch)
	n := 0
	var timer Timer
	timer = c.Every(10*time.Millisecond, func() {
		n++
		if n == 2 {
			timer.Stop()
		}
	})

	c.Advance(time.Second)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, c.Pending())
}

func TestFakeChainedCallbacks(t *testing.T) {
	c := NewFake(epoch)
	var order []int
	var step func(i int)
	step = func(i int) {
		order = append(order, i)
		if i < 3 {
			c.AfterFunc(10*time.Millisecond, func() { step(i + 1) })
		}
	}
	c.AfterFunc(10*time.Millisecond, func() { step(0) })

	c.Advance(25 * time.Millisecond)
	assert.Equal(t, []int{0, 1}, order)

	c.Advance(time.Second)
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestFakeEveryRejectsZero(t *testing.T) {
	c := NewFake(epoch)
	assert.Panics(t, func() { c.Every(0, func() {}) })
}

func TestRealEveryStop(t *testing.T) {
	var n atomic.Int32
	timer := Real{}.Every(time.Millisecond, func() { n.Add(1) })

	require.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, time.Millisecond)
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
}

func TestRealAfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real{}.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AfterFunc did not fire")
	}
}
