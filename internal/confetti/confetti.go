// Package confetti simulates paper particles fired from points on the
// screen. It has no drawing code; the view reads a Snapshot every frame.
package confetti

import (
	"image/color"
	"math"
	"sync"
)

// Origin is a position normalised to the canvas, 0..1 on each axis.
type Origin struct {
	X, Y float64
}

// Options describes one emission. Zero fields take the defaults below.
type Options struct {
	Count         int
	Angle         float64 // degrees, 90 fires straight up
	Spread        float64 // degrees
	StartVelocity float64
	Decay         float64
	Gravity       float64
	Drift         float64
	Ticks         int
	Origin        *Origin
	Colors        []color.RGBA
	Scalar        float64
}

var defaultColors = []color.RGBA{
	{R: 0x26, G: 0xcc, B: 0xff, A: 0xff},
	{R: 0xa2, G: 0x5a, B: 0xfd, A: 0xff},
	{R: 0xff, G: 0x5e, B: 0x7e, A: 0xff},
	{R: 0x88, G: 0xff, B: 0x5a, A: 0xff},
	{R: 0xfc, G: 0xff, B: 0x42, A: 0xff},
}

func (o Options) withDefaults() Options {
	if o.Count == 0 {
		o.Count = 50
	}
	if o.Angle == 0 {
		o.Angle = 90
	}
	if o.Spread == 0 {
		o.Spread = 45
	}
	if o.StartVelocity == 0 {
		o.StartVelocity = 45
	}
	if o.Decay == 0 {
		o.Decay = 0.9
	}
	if o.Gravity == 0 {
		o.Gravity = 1
	}
	if o.Ticks == 0 {
		o.Ticks = 200
	}
	if o.Origin == nil {
		o.Origin = &Origin{X: 0.5, Y: 0.5}
	}
	if len(o.Colors) == 0 {
		o.Colors = defaultColors
	}
	if o.Scalar == 0 {
		o.Scalar = 1
	}
	return o
}

// Particle is one piece of confetti. Wobble and tilt give the fluttering
// quad drawn by the view.
type Particle struct {
	X, Y        float64
	Wobble      float64
	WobbleSpeed float64
	Velocity    float64
	Angle2D     float64
	TiltAngle   float64
	TiltSin     float64
	TiltCos     float64
	Random      float64
	Color       color.RGBA
	Tick        int
	TotalTicks  int
	Decay       float64
	Drift       float64
	Gravity     float64
	Scalar      float64
}

// Progress is 0 at birth and 1 at expiry.
func (p *Particle) Progress() float64 {
	return float64(p.Tick) / float64(p.TotalTicks)
}

// Corners returns the wobbling quad (x1,y1 .. x4,y4) in canvas pixels.
func (p *Particle) Corners() [4][2]float64 {
	x1 := p.X + p.Random*p.TiltCos
	y1 := p.Y + p.Random*p.TiltSin
	x2 := p.X + 10*p.Scalar*math.Cos(p.Wobble) // wobble X
	y2 := p.Y + 10*p.Scalar*math.Sin(p.Wobble) // wobble Y
	return [4][2]float64{
		{p.X, p.Y},
		{x2, y1},
		{x2 + x1 - p.X, y2 + y1 - p.Y},
		{x1, y2},
	}
}

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// System owns live particles on a canvas of Width x Height pixels. Emit and
// Step may be called from different goroutines.
type System struct {
	mu        sync.Mutex
	rnd       Source
	width     float64
	height    float64
	particles []Particle
	limit     int
}

// NewSystem creates a system that keeps at most limit particles alive; zero
// means no limit.
func NewSystem(rnd Source, limit int) *System {
	return &System{rnd: rnd, limit: limit}
}

func (s *System) Resize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// Emit fires o.Count particles. Particles beyond the cap are dropped.
func (s *System) Emit(o Options) {
	o = o.withDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()

	startX := s.width * o.Origin.X
	startY := s.height * o.Origin.Y
	radAngle := o.Angle * math.Pi / 180
	radSpread := o.Spread * math.Pi / 180

	for i := 0; i < o.Count; i++ {
		if s.limit > 0 && len(s.particles) >= s.limit {
			return
		}
		s.particles = append(s.particles, Particle{
			X:           startX,
			Y:           startY,
			Wobble:      s.rnd.Float64() * 10,
			WobbleSpeed: math.Min(0.11, s.rnd.Float64()*0.1+0.05),
			Velocity:    o.StartVelocity*0.5 + s.rnd.Float64()*o.StartVelocity,
			Angle2D:     -radAngle + (0.5*radSpread - s.rnd.Float64()*radSpread),
			TiltAngle:   (s.rnd.Float64()*(0.75-0.25) + 0.25) * math.Pi,
			Random:      s.rnd.Float64() + 2,
			Color:       o.Colors[i%len(o.Colors)],
			TotalTicks:  o.Ticks,
			Decay:       o.Decay,
			Drift:       o.Drift,
			Gravity:     o.Gravity * 3,
			Scalar:      o.Scalar,
		})
	}
}

// Step advances every particle one frame and drops the expired ones.
func (s *System) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.particles[:0]
	for _, p := range s.particles {
		p.X += math.Cos(p.Angle2D)*p.Velocity + p.Drift
		p.Y += math.Sin(p.Angle2D)*p.Velocity + p.Gravity
		p.Velocity *= p.Decay
		p.Wobble += p.WobbleSpeed
		p.TiltAngle += 0.1
		p.TiltSin = math.Sin(p.TiltAngle)
		p.TiltCos = math.Cos(p.TiltAngle)
		p.Random = s.rnd.Float64() + 2
		p.Tick++

		if p.Tick < p.TotalTicks {
			live = append(live, p)
		}
	}
	clear(s.particles[len(live):])
	s.particles = live
}

// Snapshot appends copies of the live particles to dst.
func (s *System) Snapshot(dst []Particle) []Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(dst, s.particles...)
}

func (s *System) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.particles)
}
