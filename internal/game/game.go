// Package game is the ebiten front end: it lays out the prompt, turns
// mouse, touch and keyboard input into scene calls and draws the result.
package game

import (
	"log/slog"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/valentine/internal/audio"
	"github.com/iburimskiy/valentine/internal/clock"
	"github.com/iburimskiy/valentine/internal/confetti"
	"github.com/iburimskiy/valentine/internal/config"
	"github.com/iburimskiy/valentine/internal/evade"
	"github.com/iburimskiy/valentine/internal/notify"
	"github.com/iburimskiy/valentine/internal/prompt"
	"github.com/iburimskiy/valentine/internal/scene"
)

const (
	questionSize   = 36
	rejectFontSize = 16
	rejectPadX     = 32
	rejectPadY     = 12
	buttonGap      = 24

	// particles alive at once; the opening burst alone is 150
	confettiLimit = 1500
)

type Game struct {
	cfg *config.Config
	log *slog.Logger

	// model
	scene    *scene.Scene
	audio    *audio.Scheduler
	speaker  *audio.Speaker
	confetti *confetti.System
	burst    *confetti.Burst

	// viz
	width      float64
	height     float64
	time       float64
	colorPhase float64
	hearts     []heart
	particles  []confetti.Particle
	level      float64

	// input
	hovered  scene.Control
	focus    scene.Control
	touchIDs []ebiten.TouchID

	frame frame
}

// frame is the layout of one tick.
type frame struct {
	question vec
	accept   rect
	reject   rect
	audio    rect
}

// New builds the game and everything it drives.
func New(cfg *config.Config, logger *slog.Logger) *Game {
	clk := clock.Real{}

	speaker := audio.NewSpeaker(audio.SpeakerConfig{
		SampleRate: cfg.Audio.SampleRate,
		Buffer:     cfg.Audio.Buffer(),
		Volume:     cfg.Audio.MasterVolume,
		RingSize:   config.VisualRingSize,
		Smoothing:  config.SmoothingFactor,
	})
	settings := audio.DefaultSettings()
	settings.AmbientNote = cfg.Audio.Note()
	settings.AmbientInterval = cfg.Audio.Interval()
	settings.ChimeStep = cfg.Audio.ChimeStep()
	sched := audio.NewScheduler(speaker, clk, settings, logger)

	// Burst ticks on a timer goroutine, so the system gets its own source.
	system := confetti.NewSystem(newRand(), confettiLimit)
	burst := &confetti.Burst{
		Emitter:  system,
		Clock:    clk,
		Duration: cfg.Celebration.Duration(),
		Interval: cfg.Celebration.Interval(),
	}

	var notifier scene.Notifier = notify.Disabled{}
	if cfg.Celebration.Notify {
		notifier = notify.Desktop{Title: cfg.Window.Title}
	}

	p := cfg.Prompt
	deriver := prompt.Deriver{
		Sizing: prompt.Sizing{
			Base:    p.BaseSize,
			Step:    p.GrowthStep,
			Max:     p.MaxSize,
			MinPadX: p.MinPadX,
			MinPadY: p.MinPadY,
		},
		Messages: p.Messages,
	}
	evader := &evade.Evader{
		Source:   newRand(),
		Padding:  p.EvadePadding,
		Fallback: evade.Size{W: p.FallbackWidth, H: p.FallbackHeight},
	}
	sc := scene.New(prompt.NewMachine(), deriver, evader, evade.NewSpring(p.SpringStiff, p.SpringDamping), scene.Deps{
		Tones:      sched,
		Celebrator: burst,
		Notifier:   notifier,
		Clock:      clk,
		Logger:     logger,
	})

	g := &Game{
		cfg:      cfg,
		log:      logger.With("component", "game"),
		scene:    sc,
		audio:    sched,
		speaker:  speaker,
		confetti: system,
		burst:    burst,
		hearts:   newHearts(newRand()),
	}
	g.resize(float64(cfg.Window.Width), float64(cfg.Window.Height))

	if cfg.Audio.Enabled {
		if err := sched.Enable(); err != nil {
			g.log.Warn("audio unavailable at start", "error", err)
		}
	}
	return g
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (g *Game) Update() error {
	g.frame = g.arrange()
	g.scene.MeasureReject(g.frame.reject.w, g.frame.reject.h)

	if err := g.handleInput(); err != nil {
		return err
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.time += dt
	g.colorPhase += config.ColorShiftSpeed
	g.scene.Update(dt)
	g.confetti.Step()
	if g.audio.Enabled() {
		g.level = g.speaker.Level()
	} else {
		g.level = 0
	}
	return nil
}

// Layout follows the window so evasion bounds track resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func (g *Game) resize(w, h float64) {
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h
	g.scene.Resize(w, h)
	g.confetti.Resize(w, h)
}

// arrange lays out the controls for the current display.
func (g *Game) arrange() frame {
	d := g.scene.Display()
	cx, cy := g.width/2, g.height/2

	tw, th := measure("Yes", d.AcceptFontSize)
	accept := centered(cx, cy-40, tw+2*d.AcceptPadX, th+2*d.AcceptPadY)

	rw, rh := measure(d.RejectMessage, rejectFontSize)
	rw += 2 * rejectPadX
	rh += 2 * rejectPadY
	var reject rect
	if d.RejectEvasive {
		off := g.scene.RejectOffset()
		reject = centered(cx+off.X, cy+off.Y, rw, rh)
	} else {
		reject = rect{x: cx - rw/2, y: accept.y + accept.h + buttonGap, w: rw, h: rh}
	}

	return frame{
		question: vec{cx, cy - 180},
		accept:   accept,
		reject:   reject,
		audio: rect{
			x: g.width - config.ToggleMargin - config.ToggleSize,
			y: config.ToggleMargin,
			w: config.ToggleSize,
			h: config.ToggleSize,
		},
	}
}

// Close stops the celebration and releases the audio device.
func (g *Game) Close() error {
	g.burst.Stop()
	return g.audio.Close()
}
