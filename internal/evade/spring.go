package evade

import "math"

const (
	settleDistance = 0.5
	settleSpeed    = 1.0
)

// Spring moves a point toward a target with a damped spring, so the control
// glides to its new place instead of jumping.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64

	pos, vel, target Point
}

func NewSpring(stiffness, damping float64) *Spring {
	return &Spring{Stiffness: stiffness, Damping: damping, Mass: 1}
}

func (s *Spring) SetTarget(p Point) { s.target = p }

func (s *Spring) Target() Point { return s.target }

func (s *Spring) Position() Point { return s.pos }

// Snap jumps straight to p and stops all motion.
func (s *Spring) Snap(p Point) {
	s.pos, s.target, s.vel = p, p, Point{}
}

// Step integrates dt seconds (semi-implicit Euler) and returns the new
// position.
func (s *Spring) Step(dt float64) Point {
	if s.Settled() {
		s.pos, s.vel = s.target, Point{}
		return s.pos
	}
	mass := s.Mass
	if mass <= 0 {
		mass = 1
	}
	ax := (-s.Stiffness*(s.pos.X-s.target.X) - s.Damping*s.vel.X) / mass
	ay := (-s.Stiffness*(s.pos.Y-s.target.Y) - s.Damping*s.vel.Y) / mass
	s.vel.X += ax * dt
	s.vel.Y += ay * dt
	s.pos.X += s.vel.X * dt
	s.pos.Y += s.vel.Y * dt
	return s.pos
}

func (s *Spring) Settled() bool {
	return math.Hypot(s.pos.X-s.target.X, s.pos.Y-s.target.Y) < settleDistance &&
		math.Hypot(s.vel.X, s.vel.Y) < settleSpeed
}
