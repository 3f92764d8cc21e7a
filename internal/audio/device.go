package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// samples metered by Speaker.Level
const levelWindow = 2048

// ErrNotOpen is returned when a device is used before Open.
var ErrNotOpen = errors.New("audio: device not open")

// Device is an output that tones are mixed into. It is created lazily by
// Open, may start suspended until Resume, and is released by Close.
type Device interface {
	Open() error
	Resume() error
	Ready() bool
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Close() error
}

// SpeakerConfig configures the speaker-backed device.
type SpeakerConfig struct {
	SampleRate int
	Buffer     time.Duration
	Volume     float64 // 0.0-1.0
	RingSize   int
	Smoothing  float64
}

// Speaker plays through the system audio output via beep/speaker. The
// speaker is process-wide, so only one Speaker should be open at a time.
type Speaker struct {
	cfg   SpeakerConfig
	rate  beep.SampleRate
	mixer *beep.Mixer
	ctrl  *beep.Ctrl
	tap   *Tap

	mu     sync.Mutex
	opened bool
}

func NewSpeaker(cfg SpeakerConfig) *Speaker {
	rate := beep.SampleRate(cfg.SampleRate)
	mixer := &beep.Mixer{}
	ctrl := &beep.Ctrl{Streamer: mixer, Paused: true}
	return &Speaker{
		cfg:   cfg,
		rate:  rate,
		mixer: mixer,
		ctrl:  ctrl,
		tap:   NewTap(ctrl, cfg.RingSize, levelWindow, cfg.Smoothing),
	}
}

// Open initialises the output. The mixer starts paused until Resume.
func (s *Speaker) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened {
		return nil
	}

	if err := speaker.Init(s.rate, s.rate.N(s.cfg.Buffer)); err != nil {
		return fmt.Errorf("init speaker at %d Hz: %w", s.rate, err)
	}
	speaker.Play(newVolume(s.tap, s.cfg.Volume))
	s.opened = true
	return nil
}

func (s *Speaker) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return ErrNotOpen
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (s *Speaker) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

func (s *Speaker) SampleRate() beep.SampleRate { return s.rate }

func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Level meters the output for display.
func (s *Speaker) Level() float64 {
	return s.tap.Level()
}

func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	s.opened = false
	return nil
}

// newVolume wraps s at linear volume vol. Log2(0) is -Inf, so zero is
// rendered as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
