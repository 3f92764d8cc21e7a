package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer, keeps the last samples in a ring buffer and
// tracks the mean square of the most recent window as they pass, so metering
// a frame costs nothing.
type Tap struct {
	Source beep.Streamer

	mu        sync.RWMutex
	buffer    [][2]float64
	nextIndex int

	squares    []float64 // mono squares, ring of window length
	sqIndex    int
	sumSquares float64

	level     float64
	smoothing float64
}

// NewTap keeps ringSize samples for Snapshot and meters the last window of
// them.
func NewTap(src beep.Streamer, ringSize, window int, smoothing float64) *Tap {
	window = max(1, min(window, ringSize))
	return &Tap{
		Source:    src,
		buffer:    make([][2]float64, ringSize),
		squares:   make([]float64, window),
		smoothing: smoothing,
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n <= 0 {
		return n, ok
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range samples[:n] {
		t.buffer[t.nextIndex] = s
		t.nextIndex = (t.nextIndex + 1) % len(t.buffer)

		mono := (s[0] + s[1]) * 0.5
		sq := mono * mono
		t.sumSquares += sq - t.squares[t.sqIndex]
		t.squares[t.sqIndex] = sq
		t.sqIndex = (t.sqIndex + 1) % len(t.squares)
		if t.sqIndex == 0 {
			// resum once per lap so rounding never accumulates
			t.sumSquares = 0
			for _, v := range t.squares {
				t.sumSquares += v
			}
		}
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot returns up to the last n samples, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, len(t.buffer))
	start := (t.nextIndex - n + len(t.buffer)) % len(t.buffer)
	out := make([][2]float64, 0, n)
	if start+n <= len(t.buffer) {
		return append(out, t.buffer[start:start+n]...)
	}
	out = append(out, t.buffer[start:]...)
	return append(out, t.buffer[:t.nextIndex]...)
}

// Level returns the smoothed, compressed RMS of the metering window in
// [0, 1]. Call it once per frame.
func (t *Tap) Level() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	mag := math.Pow(math.Sqrt(max(0, t.sumSquares)/float64(len(t.squares))), 0.3)
	t.level = t.smoothing*t.level + (1-t.smoothing)*mag
	return math.Min(1, t.level)
}
