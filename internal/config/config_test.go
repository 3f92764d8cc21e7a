package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "valentine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, WindowWidth, cfg.Window.Width)
	assert.Len(t, cfg.Prompt.Messages, 15)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 400*time.Millisecond, cfg.Audio.Interval())
	assert.Equal(t, 1500*time.Millisecond, cfg.Audio.Note())
	assert.Equal(t, 3*time.Second, cfg.Celebration.Duration())
	assert.Equal(t, 16*time.Millisecond, cfg.Celebration.Interval())
	assert.Equal(t, 100*time.Millisecond, cfg.Audio.Buffer())
	assert.Equal(t, 100*time.Millisecond, cfg.Audio.ChimeStep())
}

func TestDefaultMessagesAreCopied(t *testing.T) {
	cfg := Default()
	cfg.Prompt.Messages[0] = "changed"
	assert.Equal(t, "Are you sure?", DefaultMessages[0])
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
prompt:
  question: "Dinner tonight?"
  max_size: 90
audio:
  enabled: true
  ambient_interval_ms: 250
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, WindowHeight, cfg.Window.Height, "unset fields keep defaults")
	assert.Equal(t, "Dinner tonight?", cfg.Prompt.Question)
	assert.Equal(t, 90.0, cfg.Prompt.MaxSize)
	assert.Equal(t, 24.0, cfg.Prompt.BaseSize)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Audio.Interval())

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadEmptyMessagesFallsBack(t *testing.T) {
	path := writeConfig(t, "prompt:\n  messages: []\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMessages, cfg.Prompt.Messages)
}

func TestLoadCustomMessages(t *testing.T) {
	path := writeConfig(t, "prompt:\n  messages: [\"Hmm?\", \"Sure?\"]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hmm?", "Sure?"}, cfg.Prompt.Messages)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "window: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("VALENTINE_AUDIO_ENABLED", "true")
	t.Setenv("VALENTINE_MASTER_VOLUME", "150")
	t.Setenv("VALENTINE_SAMPLE_RATE", "48000")
	t.Setenv("VALENTINE_LOG_LEVEL", "warn")

	cfg := Default()
	cfg.ApplyEnv()

	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 1.0, cfg.Audio.MasterVolume, "volume is clamped")
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnvIgnoresMalformed(t *testing.T) {
	t.Setenv("VALENTINE_AUDIO_ENABLED", "maybe")
	t.Setenv("VALENTINE_MASTER_VOLUME", "loud")
	t.Setenv("VALENTINE_SAMPLE_RATE", "-1")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"max below base", func(c *Config) { c.Prompt.MaxSize = 10 }},
		{"negative growth", func(c *Config) { c.Prompt.GrowthStep = -1 }},
		{"zero fallback", func(c *Config) { c.Prompt.FallbackHeight = 0 }},
		{"negative padding", func(c *Config) { c.Prompt.EvadePadding = -5 }},
		{"zero sample rate", func(c *Config) { c.Audio.SampleRate = 0 }},
		{"zero interval", func(c *Config) { c.Audio.AmbientIntervalMs = 0 }},
		{"zero celebration", func(c *Config) { c.Celebration.DurationMs = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
