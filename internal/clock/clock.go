// Package clock abstracts wall time and timers so scheduled behaviour can be
// driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Timer is a pending callback. Stop reports whether it prevented a future
// firing.
type Timer interface {
	Stop() bool
}

// Clock provides the current time and callback timers.
type Clock interface {
	Now() time.Time
	// AfterFunc runs f once after d.
	AfterFunc(d time.Duration, f func()) Timer
	// Every runs f every d until the returned Timer is stopped.
	Every(d time.Duration, f func()) Timer
}

// Real is the system clock. Callbacks run on their own goroutines.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (Real) Every(d time.Duration, f func()) Timer {
	t := &ticker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.run(f)
	return t
}

type ticker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *ticker) run(f func()) {
	for {
		select {
		case <-t.ticker.C:
			f()
		case <-t.done:
			return
		}
	}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
