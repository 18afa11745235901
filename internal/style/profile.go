// Package style holds the closed set of stroke looks a user can pick from.
package style

import (
	"fmt"
	"image/color"
	"strings"
)

// Variant names one of the built-in stroke profiles.
type Variant int

const (
	Solid Variant = iota
	Dashed
	Calligraphy
	Neon
)

var variantNames = [...]string{
	Solid:       "solid",
	Dashed:      "dashed",
	Calligraphy: "calligraphy",
	Neon:        "neon",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// Label is the toolbar caption for v.
func (v Variant) Label() string {
	s := v.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether v is one of the built-in variants.
func (v Variant) Valid() bool {
	return v >= 0 && int(v) < len(variantNames)
}

// Variants returns every variant in toolbar order.
func Variants() []Variant {
	return []Variant{Solid, Dashed, Calligraphy, Neon}
}

// ParseVariant maps a lower-case name such as "neon" to its Variant.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return Solid, fmt.Errorf("unknown style %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid style variant %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Glow is a soft halo painted around a stroke. A zero Radius means none.
type Glow struct {
	Color  color.NRGBA
	Radius float64
}

// Profile is the full set of paint parameters for one variant.
type Profile struct {
	Variant   Variant
	LineWidth float64
	Dash      []float64 // alternating on/off lengths; empty is solid
	Color     color.NRGBA
	Opacity   float64
	Glow      Glow
}

// Dashed reports whether p paints with a dash pattern.
func (p Profile) Dashed() bool { return len(p.Dash) > 0 }

// Glows reports whether p paints a halo.
func (p Profile) Glows() bool { return p.Glow.Radius > 0 }

var (
	black = color.NRGBA{A: 0xff}
	cyan  = color.NRGBA{G: 0xff, B: 0xff, A: 0xff}
)

var profiles = [...]Profile{
	Solid: {
		Variant:   Solid,
		LineWidth: 10,
		Color:     black,
		Opacity:   1,
	},
	Dashed: {
		Variant:   Dashed,
		LineWidth: 8,
		Dash:      []float64{10, 10},
		Color:     black,
		Opacity:   1,
	},
	Calligraphy: {
		Variant:   Calligraphy,
		LineWidth: 12,
		Color:     black,
		Opacity:   0.7,
		Glow:      Glow{Color: color.NRGBA{A: 77}, Radius: 5},
	},
	Neon: {
		Variant:   Neon,
		LineWidth: 8,
		Color:     cyan,
		Opacity:   1,
		Glow:      Glow{Color: cyan, Radius: 15},
	},
}

// Lookup returns the profile for v. The result owns its dash slice, so
// callers cannot alter the table. Unknown variants fall back to Solid.
func Lookup(v Variant) Profile {
	if !v.Valid() {
		v = Solid
	}
	p := profiles[v]
	if p.Dash != nil {
		p.Dash = append([]float64(nil), p.Dash...)
	}
	return p
}
