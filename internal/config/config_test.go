package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PinchBoard/internal/state"
	"PinchBoard/internal/style"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, state.MinScale, cfg.Limits.MinScale)
	assert.Equal(t, state.MaxScale, cfg.Limits.MaxScale)
	assert.Equal(t, state.PinchSensitivity, cfg.Limits.PinchSensitivity)
	assert.Equal(t, state.Identity(), cfg.InitialTransform())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
width = 640
style = "neon"
log_level = "debug"

[limits]
max_scale = 4.0
initial_scale = 0.5

[remote]
enabled = false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.Equal(t, style.Neon, cfg.Style)
	assert.Equal(t, 4.0, cfg.Limits.MaxScale)
	assert.Equal(t, 0.5, cfg.Limits.MinScale)
	assert.Equal(t, 0.5, cfg.InitialTransform().Scale)
	assert.False(t, cfg.Remote.Enabled)
	assert.Equal(t, ":8888", cfg.Remote.Listen)

	lvl, err := ParseLevel(cfg.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", `width = `},
		{"unknown style", `style = "marker"`},
		{"bad level", `log_level = "loud"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Parse([]byte(tt.data), &cfg))
		})
	}
}

func TestValidateSentinels(t *testing.T) {
	cfg := Default()
	cfg.Width = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidSize)

	cfg = Default()
	cfg.Limits.MaxScale = 0.1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLimits)

	cfg = Default()
	cfg.Limits.InitialScale = 5
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLimits)

	cfg = Default()
	cfg.Limits.PinchSensitivity = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLimits)
}
