package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// Shape is an oscillator waveform.
type Shape int

const (
	Sine Shape = iota
	Square
	Saw
	Triangle
)

func (s Shape) String() string {
	switch s {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Saw:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

const (
	// Every tone starts quiet and decays exponentially to near silence.
	startGain = 0.05
	endGain   = 0.001
)

// tone is a single decaying oscillator voice.
type tone struct {
	freq     float64
	phase    float64
	shape    Shape
	rate     beep.SampleRate
	position int
	duration int
	decay    float64 // per-sample gain multiplier
	gain     float64
}

// Tone synthesizes one note of freq Hz lasting dur. The stream drains after
// dur.
func Tone(rate beep.SampleRate, freq float64, dur time.Duration, shape Shape) beep.Streamer {
	n := rate.N(dur)
	if n < 1 {
		n = 1
	}
	return &tone{
		freq:     freq,
		shape:    shape,
		rate:     rate,
		duration: n,
		decay:    math.Pow(endGain/startGain, 1/float64(n)),
		gain:     startGain,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}

		val := t.gain * wave(t.shape, t.phase)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase) // keep in [0, 1)
		t.gain *= t.decay
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// wave evaluates shape at phase in [0, 1), returning [-1, 1].
func wave(shape Shape, phase float64) float64 {
	switch shape {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Saw:
		return 2*phase - 1
	case Triangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
