// Package scene is the view-model for the prompt window. It turns input
// events into state-machine calls and keeps everything the view needs
// (display derivation, reject control position, acceptance time) current.
// It knows nothing about ebiten.
package scene

import (
	"errors"
	"log/slog"
	"time"

	"github.com/iburimskiy/valentine/internal/clock"
	"github.com/iburimskiy/valentine/internal/evade"
	"github.com/iburimskiy/valentine/internal/prompt"
)

// Tones receives audio cues. *audio.Scheduler satisfies it.
type Tones interface {
	PlayReject()
	PlayChime()
}

// Celebrator runs the one-shot visual burst. *confetti.Burst satisfies it.
type Celebrator interface {
	Start() bool
}

// Notifier sends the acceptance message outside the window.
type Notifier interface {
	Notify(msg string) error
}

// CelebrationMessage is the headline shown and sent on acceptance.
const CelebrationMessage = "Yay! Best Day Ever!"

// Deps are the capabilities a Scene drives. Notifier may be nil.
type Deps struct {
	Tones      Tones
	Celebrator Celebrator
	Notifier   Notifier
	Clock      clock.Clock
	Logger     *slog.Logger
}

// Scene is not safe for concurrent use; call it from the update loop.
type Scene struct {
	machine *prompt.Machine
	deriver prompt.Deriver
	evader  *evade.Evader
	spring  *evade.Spring
	deps    Deps
	log     *slog.Logger

	display    prompt.Display
	viewport   evade.Size
	rejectSize evade.Size
	acceptedAt time.Time
	overReject bool
}

// New wires a Scene to m. The scene observes m for the rest of its life.
func New(m *prompt.Machine, deriver prompt.Deriver, evader *evade.Evader, spring *evade.Spring, deps Deps) *Scene {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	s := &Scene{
		machine: m,
		deriver: deriver,
		evader:  evader,
		spring:  spring,
		deps:    deps,
		log:     logger.With("component", "scene"),
	}
	s.display = deriver.Derive(m.Snapshot())
	m.Observe(s)
	return s
}

func (s *Scene) Display() prompt.Display { return s.display }

func (s *Scene) State() prompt.InteractionState { return s.machine.Snapshot() }

// AcceptedFor is the time since acceptance, or zero.
func (s *Scene) AcceptedFor() time.Duration {
	if s.acceptedAt.IsZero() {
		return 0
	}
	return s.deps.Clock.Now().Sub(s.acceptedAt)
}

// Resize records the live viewport.
func (s *Scene) Resize(w, h float64) {
	s.viewport = evade.Size{W: w, H: h}
}

// MeasureReject records the laid-out size of the reject control. A zero
// size means it has not been laid out yet.
func (s *Scene) MeasureReject(w, h float64) {
	s.rejectSize = evade.Size{W: w, H: h}
}

// Bounds is the current evasion range for the reject control.
func (s *Scene) Bounds() evade.Bounds {
	return s.evader.Bounds(s.viewport, s.rejectSize)
}

// RejectOffset is the animated offset of the reject control from the
// viewport centre, kept inside the current bounds.
func (s *Scene) RejectOffset() evade.Point {
	return s.Bounds().Clamp(s.spring.Position())
}

// RejectTarget is where the reject control is heading.
func (s *Scene) RejectTarget() evade.Point {
	return s.spring.Target()
}

// Update advances animation by dt seconds.
func (s *Scene) Update(dt float64) {
	s.spring.Step(dt)
}

// Reject handles a click or keyboard activation of the reject control.
func (s *Scene) Reject() {
	if err := s.machine.Reject(); err != nil {
		if errors.Is(err, prompt.ErrAccepted) {
			s.log.Debug("reject ignored after acceptance")
			return
		}
		s.log.Warn("reject failed", "error", err)
	}
}

// Accept handles a click or keyboard activation of the accept control.
func (s *Scene) Accept() {
	if !s.machine.Accept() {
		s.log.Debug("accept ignored, already accepted")
	}
}

// PointerEnterReject handles the pointer entering, or a touch starting on,
// the reject control. It moves the control only in evasive mode.
func (s *Scene) PointerEnterReject() bool {
	if s.machine.State() == prompt.Accepted || !s.display.RejectEvasive {
		return false
	}
	s.evade()
	return true
}

func (s *Scene) evade() {
	target := s.evader.Next(s.viewport, s.rejectSize)
	s.spring.SetTarget(target)
	s.log.Debug("reject control evading", "x", target.X, "y", target.Y)
}

// Rejected implements prompt.Observer. Side effects run in a fixed order:
// display, position, audio.
func (s *Scene) Rejected(st prompt.InteractionState) {
	s.display = s.deriver.Derive(st)
	if s.display.RejectEvasive {
		s.evade()
	}
	if s.deps.Tones != nil {
		s.deps.Tones.PlayReject()
	}
	s.log.Info("rejected", "count", st.RejectionCount, "message", s.display.RejectMessage)
}

// Accepted implements prompt.Observer.
func (s *Scene) Accepted(st prompt.InteractionState) {
	s.display = s.deriver.Derive(st)
	s.acceptedAt = s.deps.Clock.Now()
	if s.deps.Celebrator != nil {
		s.deps.Celebrator.Start()
	}
	if s.deps.Tones != nil {
		s.deps.Tones.PlayChime()
	}
	if s.deps.Notifier != nil {
		go func(n Notifier) {
			if err := n.Notify(CelebrationMessage); err != nil {
				s.log.Warn("notification failed", "error", err)
			}
		}(s.deps.Notifier)
	}
	s.log.Info("accepted", "rejections", st.RejectionCount)
}
