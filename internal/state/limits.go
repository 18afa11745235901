package state

import "fmt"

// Defaults for the zoom range and pinch response.
const (
	MinScale         = 0.5
	MaxScale         = 3.0
	PinchSensitivity = 0.005
)

// Limits bounds the transform a pinch can produce.
type Limits struct {
	MinScale         float64 `toml:"min_scale"`
	MaxScale         float64 `toml:"max_scale"`
	PinchSensitivity float64 `toml:"pinch_sensitivity"`
}

// DefaultLimits returns the built-in zoom range and sensitivity.
func DefaultLimits() Limits {
	return Limits{
		MinScale:         MinScale,
		MaxScale:         MaxScale,
		PinchSensitivity: PinchSensitivity,
	}
}

// Clamp restricts s to [MinScale, MaxScale].
func (l Limits) Clamp(s float64) float64 {
	if s < l.MinScale {
		return l.MinScale
	}
	if s > l.MaxScale {
		return l.MaxScale
	}
	return s
}

// Validate reports whether the limits describe a usable zoom range.
func (l Limits) Validate() error {
	if l.MinScale <= 0 {
		return fmt.Errorf("min scale %v must be positive", l.MinScale)
	}
	if l.MaxScale < l.MinScale {
		return fmt.Errorf("max scale %v below min scale %v", l.MaxScale, l.MinScale)
	}
	if l.PinchSensitivity <= 0 {
		return fmt.Errorf("pinch sensitivity %v must be positive", l.PinchSensitivity)
	}
	return nil
}
