// Package evade places the reject control at random offsets from its anchor,
// inside the viewport, and animates it there.
package evade

import "math"

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Known reports whether both dimensions have been measured.
func (s Size) Known() bool {
	return s.W > 0 && s.H > 0
}

// Point is an offset from the control's anchor.
type Point struct {
	X, Y float64
}

// Bounds is the largest displacement allowed on each axis.
type Bounds struct {
	MaxX, MaxY float64
}

// ComputeBounds returns viewport/2 - control/2 - padding per axis, never
// negative.
func ComputeBounds(viewport, control Size, padding float64) Bounds {
	return Bounds{
		MaxX: math.Max(0, viewport.W/2-control.W/2-padding),
		MaxY: math.Max(0, viewport.H/2-control.H/2-padding),
	}
}

func (b Bounds) Contains(p Point) bool {
	return math.Abs(p.X) <= b.MaxX && math.Abs(p.Y) <= b.MaxY
}

// Clamp pulls p inside b.
func (b Bounds) Clamp(p Point) Point {
	return Point{
		X: math.Max(-b.MaxX, math.Min(b.MaxX, p.X)),
		Y: math.Max(-b.MaxY, math.Min(b.MaxY, p.Y)),
	}
}

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Sample draws a point uniformly from [-MaxX, MaxX] x [-MaxY, MaxY].
func Sample(b Bounds, src Source) Point {
	return Point{
		X: (src.Float64()*2 - 1) * b.MaxX,
		Y: (src.Float64()*2 - 1) * b.MaxY,
	}
}

// Evader picks new targets for the reject control.
type Evader struct {
	Source   Source
	Padding  float64
	Fallback Size // assumed control size before layout
}

// Bounds uses the fallback size when control has not been measured.
func (e *Evader) Bounds(viewport, control Size) Bounds {
	if !control.Known() {
		control = e.Fallback
	}
	return ComputeBounds(viewport, control, e.Padding)
}

func (e *Evader) Next(viewport, control Size) Point {
	return Sample(e.Bounds(viewport, control), e.Source)
}
