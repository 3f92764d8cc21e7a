package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iburimskiy/valentine/internal/clock"
)

// Note is one pitched event.
type Note struct {
	Freq     float64
	Duration time.Duration
	Shape    Shape
}

// Settings holds the fixed musical material.
type Settings struct {
	Ambient         []float64 // Hz, cycled while enabled
	AmbientNote     time.Duration
	AmbientInterval time.Duration
	Reject          Note
	Chime           []float64 // Hz, ascending
	ChimeNote       time.Duration
	ChimeStep       time.Duration
}

// DefaultSettings is a C major arpeggio for the ambient loop, a low saw
// "bonk" for rejection and a C5-C6 triangle chime for acceptance.
func DefaultSettings() Settings {
	return Settings{
		Ambient:         []float64{261.63, 329.63, 392.00, 523.25},
		AmbientNote:     1500 * time.Millisecond,
		AmbientInterval: 400 * time.Millisecond,
		Reject:          Note{Freq: 150, Duration: 300 * time.Millisecond, Shape: Saw},
		Chime:           []float64{523.25, 659.25, 783.99, 1046.50},
		ChimeNote:       2 * time.Second,
		ChimeStep:       100 * time.Millisecond,
	}
}

// Scheduler turns prompt events into tones and runs the ambient loop while
// enabled. It owns at most one pending ambient timer.
type Scheduler struct {
	dev      Device
	clock    clock.Clock
	settings Settings
	log      *slog.Logger

	mu        sync.Mutex
	enabled   bool
	playing   bool
	noteIndex int
	loop      clock.Timer
	gen       uint64
	chimes    []clock.Timer
	closed    bool
}

func NewScheduler(dev Device, clk clock.Clock, settings Settings, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		dev:      dev,
		clock:    clk,
		settings: settings,
		log:      logger.With("component", "audio"),
	}
}

// Enable opens and resumes the device on first use and starts the ambient
// loop. On failure the scheduler stays disabled.
func (s *Scheduler) Enable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrNotOpen
	}
	if s.enabled {
		return nil
	}
	if !s.dev.Ready() {
		if err := s.dev.Open(); err != nil {
			return fmt.Errorf("open audio device: %w", err)
		}
	}
	if err := s.dev.Resume(); err != nil {
		return fmt.Errorf("resume audio device: %w", err)
	}

	s.enabled = true
	s.playing = true
	s.noteIndex = 0
	s.gen++
	s.tickLocked(s.gen)
	s.log.Info("audio enabled")
	return nil
}

// Disable stops the ambient loop. The device stays open.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disableLocked()
}

func (s *Scheduler) disableLocked() {
	if !s.enabled {
		return
	}
	s.enabled = false
	s.playing = false
	s.stopLoopLocked()
	s.log.Info("audio disabled")
}

// Toggle flips the enabled state and reports the new one. A failed enable is
// logged and leaves audio off.
func (s *Scheduler) Toggle() bool {
	if s.Enabled() {
		s.Disable()
		return false
	}
	if err := s.Enable(); err != nil {
		s.log.Warn("audio unavailable", "error", err)
		return false
	}
	return true
}

func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// PlayTone plays one note, or nothing when disabled or the device is not
// ready.
func (s *Scheduler) PlayTone(freq float64, dur time.Duration, shape Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playLocked(freq, dur, shape)
}

// PlayReject plays the short low tone for a rejection.
func (s *Scheduler) PlayReject() {
	n := s.settings.Reject
	s.PlayTone(n.Freq, n.Duration, n.Shape)
}

// PlayChime plays the ascending acceptance chime, one note per ChimeStep.
func (s *Scheduler) PlayChime() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}

	for i, freq := range s.settings.Chime {
		if i == 0 {
			s.playLocked(freq, s.settings.ChimeNote, Triangle)
			continue
		}
		var t clock.Timer
		t = s.clock.AfterFunc(time.Duration(i)*s.settings.ChimeStep, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.forgetChimeLocked(t)
			s.playLocked(freq, s.settings.ChimeNote, Triangle)
		})
		s.chimes = append(s.chimes, t)
	}
}

// Close cancels every pending timer and releases the device.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.disableLocked()
	for _, t := range s.chimes {
		t.Stop()
	}
	s.chimes = nil
	s.closed = true
	return s.dev.Close()
}

func (s *Scheduler) playLocked(freq float64, dur time.Duration, shape Shape) {
	if !s.enabled || !s.dev.Ready() {
		return
	}
	s.dev.Play(Tone(s.dev.SampleRate(), freq, dur, shape))
}

// tickLocked plays the current ambient note and schedules the next one.
// Callbacks from a cancelled loop carry a stale generation and do nothing.
func (s *Scheduler) tickLocked(gen uint64) {
	if gen != s.gen || !s.enabled || !s.playing || len(s.settings.Ambient) == 0 {
		return
	}
	s.playLocked(s.settings.Ambient[s.noteIndex], s.settings.AmbientNote, Sine)
	s.noteIndex = (s.noteIndex + 1) % len(s.settings.Ambient)
	s.loop = s.clock.AfterFunc(s.settings.AmbientInterval, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tickLocked(gen)
	})
}

func (s *Scheduler) stopLoopLocked() {
	s.gen++
	if s.loop != nil {
		s.loop.Stop()
		s.loop = nil
	}
}

func (s *Scheduler) forgetChimeLocked(t clock.Timer) {
	for i, other := range s.chimes {
		if other == t {
			s.chimes = append(s.chimes[:i], s.chimes[i+1:]...)
			return
		}
	}
}
