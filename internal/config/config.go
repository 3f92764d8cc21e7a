package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Will you be my Valentine?"

	VisualRingSize  = 8192
	SmoothingFactor = 0.6

	// Audio toggle dimensions, anchored to the top-right corner
	ToggleSize   = 44
	ToggleMargin = 20

	// Background parameters
	HeartCount      = 20
	ColorShiftSpeed = 0.01
)

// DefaultMessages are shown on the reject control, indexed by rejection count.
var DefaultMessages = []string{
	"Are you sure?",
	"Really sure?",
	"Think again...",
	"Last chance!",
	"Surely not?",
	"You might regret this!",
	"Give it another thought!",
	"Are you absolutely certain?",
	"This could be a mistake!",
	"Have a heart!",
	"Don't be so cold!",
	"Change of heart?",
	"Wouldn't you reconsider?",
	"Is that your final answer?",
	"You're breaking my heart ;(",
}

// Config is the full runtime configuration.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Prompt      PromptConfig      `yaml:"prompt"`
	Audio       AudioConfig       `yaml:"audio"`
	Celebration CelebrationConfig `yaml:"celebration"`
	Log         LogConfig         `yaml:"log"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// PromptConfig controls the question, the growth of the accept control and
// the evasion geometry of the reject control.
type PromptConfig struct {
	Question string   `yaml:"question"`
	Messages []string `yaml:"messages"`

	BaseSize   float64 `yaml:"base_size"`
	GrowthStep float64 `yaml:"growth_step"`
	MaxSize    float64 `yaml:"max_size"`
	MinPadX    float64 `yaml:"min_pad_x"`
	MinPadY    float64 `yaml:"min_pad_y"`

	EvadePadding   float64 `yaml:"evade_padding"`
	FallbackWidth  float64 `yaml:"fallback_width"`
	FallbackHeight float64 `yaml:"fallback_height"`
	SpringStiff    float64 `yaml:"spring_stiffness"`
	SpringDamping  float64 `yaml:"spring_damping"`
}

type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	SampleRate   int     `yaml:"sample_rate"`
	BufferMs     int     `yaml:"buffer_ms"`
	MasterVolume float64 `yaml:"master_volume"` // 0.0-1.0

	AmbientIntervalMs int `yaml:"ambient_interval_ms"`
	AmbientNoteMs     int `yaml:"ambient_note_ms"`
	ChimeStepMs       int `yaml:"chime_step_ms"`
}

type CelebrationConfig struct {
	DurationMs int  `yaml:"duration_ms"`
	IntervalMs int  `yaml:"interval_ms"`
	Notify     bool `yaml:"notify"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			Resizable: true,
		},
		Prompt: PromptConfig{
			Question:       "Will you be my Valentine?",
			Messages:       append([]string(nil), DefaultMessages...),
			BaseSize:       24,
			GrowthStep:     15,
			MaxSize:        120,
			MinPadX:        24,
			MinPadY:        12,
			EvadePadding:   20,
			FallbackWidth:  100,
			FallbackHeight: 50,
			SpringStiff:    300,
			SpringDamping:  20,
		},
		Audio: AudioConfig{
			Enabled:           false,
			SampleRate:        44100,
			BufferMs:          100,
			MasterVolume:      1.0,
			AmbientIntervalMs: 400,
			AmbientNoteMs:     1500,
			ChimeStepMs:       100,
		},
		Celebration: CelebrationConfig{
			DurationMs: 3000,
			IntervalMs: 16,
			Notify:     true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if len(cfg.Prompt.Messages) == 0 {
		cfg.Prompt.Messages = append([]string(nil), DefaultMessages...)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from VALENTINE_* environment variables.
// Malformed values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("VALENTINE_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}

	// 0-100 converted to 0.0-1.0
	if v := os.Getenv("VALENTINE_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.MasterVolume = clampVolume(float64(n) / 100.0)
		}
	}

	if v := os.Getenv("VALENTINE_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Audio.SampleRate = n
		}
	}

	if v := os.Getenv("VALENTINE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Prompt.BaseSize <= 0 || c.Prompt.GrowthStep < 0 {
		errs = append(errs, errors.New("prompt base_size must be positive and growth_step non-negative"))
	}
	if c.Prompt.MaxSize < c.Prompt.BaseSize {
		errs = append(errs, fmt.Errorf("prompt max_size %.0f is below base_size %.0f", c.Prompt.MaxSize, c.Prompt.BaseSize))
	}
	if c.Prompt.FallbackWidth <= 0 || c.Prompt.FallbackHeight <= 0 {
		errs = append(errs, errors.New("prompt fallback size must be positive"))
	}
	if c.Prompt.EvadePadding < 0 {
		errs = append(errs, errors.New("prompt evade_padding must not be negative"))
	}
	if c.Audio.SampleRate <= 0 || c.Audio.BufferMs <= 0 {
		errs = append(errs, errors.New("audio sample_rate and buffer_ms must be positive"))
	}
	if c.Audio.AmbientIntervalMs <= 0 || c.Audio.AmbientNoteMs <= 0 || c.Audio.ChimeStepMs <= 0 {
		errs = append(errs, errors.New("audio timings must be positive"))
	}
	if c.Celebration.DurationMs <= 0 || c.Celebration.IntervalMs <= 0 {
		errs = append(errs, errors.New("celebration timings must be positive"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}

func (a AudioConfig) Buffer() time.Duration {
	return ms(a.BufferMs)
}

func (a AudioConfig) Interval() time.Duration {
	return ms(a.AmbientIntervalMs)
}

func (a AudioConfig) Note() time.Duration {
	return ms(a.AmbientNoteMs)
}

func (a AudioConfig) ChimeStep() time.Duration {
	return ms(a.ChimeStepMs)
}

func (c CelebrationConfig) Duration() time.Duration {
	return ms(c.DurationMs)
}

func (c CelebrationConfig) Interval() time.Duration {
	return ms(c.IntervalMs)
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
