// Package config loads board settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"PinchBoard/internal/state"
	"PinchBoard/internal/style"
)

var (
	ErrInvalidLimits = errors.New("invalid zoom limits")
	ErrInvalidSize   = errors.New("invalid surface size")
)

// Limits extends the zoom bounds with the scale a session starts at.
type Limits struct {
	state.Limits
	InitialScale float64 `toml:"initial_scale"`
}

// Remote configures the websocket touch feed.
type Remote struct {
	Enabled   bool   `toml:"enabled"`
	Listen    string `toml:"listen"`
	Advertise bool   `toml:"advertise"`
	Instance  string `toml:"instance"`
}

// Config is the full set of board settings.
type Config struct {
	Width    int           `toml:"width"`
	Height   int           `toml:"height"`
	Style    style.Variant `toml:"style"`
	LogLevel string        `toml:"log_level"`
	Limits   Limits        `toml:"limits"`
	Remote   Remote        `toml:"remote"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:    1024,
		Height:   768,
		Style:    style.Solid,
		LogLevel: "info",
		Limits: Limits{
			Limits:       state.DefaultLimits(),
			InitialScale: 1,
		},
		Remote: Remote{
			Enabled:   true,
			Listen:    ":8888",
			Advertise: true,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg, keeping fields the data omits, and
// validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if err := c.Limits.Limits.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLimits, err)
	}
	if s := c.Limits.InitialScale; s < c.Limits.MinScale || s > c.Limits.MaxScale {
		return fmt.Errorf("%w: initial scale %v outside [%v, %v]",
			ErrInvalidLimits, s, c.Limits.MinScale, c.Limits.MaxScale)
	}
	if !c.Style.Valid() {
		return fmt.Errorf("unknown style %v", c.Style)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// InitialTransform is the viewport a session starts with.
func (c Config) InitialTransform() state.Transform {
	return state.Transform{Scale: c.Limits.InitialScale}
}

// ParseLevel maps a level name to its slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return l, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
