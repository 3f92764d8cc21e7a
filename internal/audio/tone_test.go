package audio

import (
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(Tone(rate, 440, 300*time.Millisecond, Sine))
	assert.Len(t, samples, rate.N(300*time.Millisecond))
}

func TestToneGainEnvelope(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, shape := range []Shape{Sine, Square, Saw, Triangle} {
		t.Run(shape.String(), func(t *testing.T) {
			samples := drain(Tone(rate, 150, time.Second, shape))
			require.NotEmpty(t, samples)

			peakHead, peakTail := 0.0, 0.0
			for i, s := range samples {
				v := math.Abs(s[0])
				require.LessOrEqual(t, v, startGain+1e-12, "sample %d", i)
				assert.Equal(t, s[0], s[1], "mono in both channels")
				if i < 200 {
					peakHead = math.Max(peakHead, v)
				}
				if i >= len(samples)-200 {
					peakTail = math.Max(peakTail, v)
				}
			}
			assert.Greater(t, peakHead, 0.03)
			assert.Less(t, peakTail, 0.0015, "decays toward near silence")
		})
	}
}

func TestToneDrained(t *testing.T) {
	s := Tone(beep.SampleRate(1000), 100, 10*time.Millisecond, Saw)
	buf := make([][2]float64, 64)

	n, ok := s.Stream(buf)
	assert.Equal(t, 10, n)
	assert.True(t, ok)

	n, ok = s.Stream(buf)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
	assert.NoError(t, s.Err())
}

func TestToneZeroDuration(t *testing.T) {
	samples := drain(Tone(beep.SampleRate(1000), 100, 0, Sine))
	assert.Len(t, samples, 1)
}

func TestWaveShapes(t *testing.T) {
	tests := []struct {
		shape Shape
		phase float64
		want  float64
	}{
		{Sine, 0.25, 1},
		{Sine, 0.75, -1},
		{Square, 0.1, 1},
		{Square, 0.6, -1},
		{Saw, 0, -1},
		{Saw, 0.5, 0},
		{Triangle, 0, -1},
		{Triangle, 0.25, 0},
		{Triangle, 0.5, 1},
		{Triangle, 0.75, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, wave(tt.shape, tt.phase), 1e-9, "%s at %v", tt.shape, tt.phase)
	}
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "sawtooth", Saw.String())
	assert.Equal(t, "unknown", Shape(9).String())
}

func TestTapSnapshotOrder(t *testing.T) {
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{float64(i), float64(i)}
		}
		return len(samples), true
	})
	tap := NewTap(src, 4, 4, 0)

	buf := make([][2]float64, 6)
	tap.Stream(buf)

	snap := tap.Snapshot(3)
	require.Len(t, snap, 3)
	assert.Equal(t, []float64{3, 4, 5}, []float64{snap[0][0], snap[1][0], snap[2][0]})

	all := tap.Snapshot(10)
	require.Len(t, all, 4, "capped at ring size")
	assert.Equal(t, []float64{2, 3, 4, 5}, []float64{all[0][0], all[1][0], all[2][0], all[3][0]})
	assert.Empty(t, tap.Snapshot(0))
}

func TestTapLevel(t *testing.T) {
	silent := NewTap(beep.Silence(-1), 256, 256, 0)
	silent.Stream(make([][2]float64, 256))
	assert.Equal(t, 0.0, silent.Level())

	loud := NewTap(Tone(beep.SampleRate(8000), 440, time.Second, Square), 256, 256, 0)
	loud.Stream(make([][2]float64, 256))
	level := loud.Level()
	assert.Greater(t, level, 0.3)
	assert.LessOrEqual(t, level, 1.0)
}

func TestTapLevelCoversOnlyTheWindow(t *testing.T) {
	loud := true
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := 0.0
			if loud {
				v = 0.5
			}
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
	tap := NewTap(src, 1024, 128, 0)

	tap.Stream(make([][2]float64, 100))
	assert.InDelta(t, math.Pow(math.Sqrt(0.25*100/128), 0.3), tap.Level(), 1e-9, "partial window")

	tap.Stream(make([][2]float64, 300))
	assert.InDelta(t, math.Pow(0.5, 0.3), tap.Level(), 1e-9)

	loud = false
	tap.Stream(make([][2]float64, 128))
	assert.Equal(t, 0.0, tap.Level(), "loud samples older than the window are forgotten")
	assert.Len(t, tap.Snapshot(1024), 1024)
}

func TestTapLevelSmoothing(t *testing.T) {
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	tap := NewTap(src, 64, 64, 0.6)
	tap.Stream(make([][2]float64, 64))

	assert.InDelta(t, 0.4, tap.Level(), 1e-9)
	assert.InDelta(t, 0.64, tap.Level(), 1e-9)
}
