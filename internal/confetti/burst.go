package confetti

import (
	"image/color"
	"sync"
	"time"

	"github.com/iburimskiy/valentine/internal/clock"
)

// Emitter accepts emissions. *System satisfies it.
type Emitter interface {
	Emit(Options)
}

var (
	pink     = color.RGBA{R: 0xff, G: 0x6b, B: 0x81, A: 0xff}
	rose     = color.RGBA{R: 0xff, G: 0x47, B: 0x57, A: 0xff}
	white    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	burstMix = []color.RGBA{pink, rose, white}
	sideMix  = []color.RGBA{pink, rose}
)

// Opening is the single large emission that starts a celebration.
var Opening = Options{
	Count:  150,
	Spread: 70,
	Origin: &Origin{X: 0.5, Y: 0.6},
	Colors: burstMix,
}

// Sides are the paired emissions repeated from both edges.
var Sides = [2]Options{
	{Count: 2, Angle: 60, Spread: 55, Origin: &Origin{X: 0, Y: 0.5}, Colors: sideMix},
	{Count: 2, Angle: 120, Spread: 55, Origin: &Origin{X: 1, Y: 0.5}, Colors: sideMix},
}

// Burst is a one-shot celebration: the opening emission, then side
// emissions every Interval until Duration has passed. One repeating timer
// drives it and stops itself at the deadline.
type Burst struct {
	Emitter  Emitter
	Clock    clock.Clock
	Duration time.Duration
	Interval time.Duration

	mu       sync.Mutex
	started  bool
	timer    clock.Timer
	deadline time.Time
}

// Start runs the burst once. Later calls report false and do nothing.
func (b *Burst) Start() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return false
	}
	b.started = true
	b.deadline = b.Clock.Now().Add(b.Duration)

	b.Emitter.Emit(Opening)
	b.emitSides()
	if b.expired() {
		return true
	}
	b.timer = b.Clock.Every(b.Interval, b.tick)
	return true
}

func (b *Burst) tick() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer == nil {
		return
	}
	b.emitSides()
	if b.expired() {
		b.stopLocked()
	}
}

// Stop cancels a running burst.
func (b *Burst) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

// Running reports whether side emissions are still scheduled.
func (b *Burst) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timer != nil
}

func (b *Burst) stopLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Burst) emitSides() {
	for _, o := range Sides {
		b.Emitter.Emit(o)
	}
}

func (b *Burst) expired() bool {
	return !b.Clock.Now().Before(b.deadline)
}
