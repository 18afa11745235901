// Package render holds the surfaces strokes are painted onto.
package render

import (
	"image/color"

	"PinchBoard/internal/capture"
	"PinchBoard/internal/state"
)

// Background is the paper color a viewport redraw fills with.
var Background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Rect is an axis-aligned rectangle in logical space.
type Rect struct {
	X, Y, W, H float64
}

// Surface is a capture backend that also owns a viewport.
type Surface interface {
	capture.Backend
	SetViewport(t state.Transform)
	ClearRect(r Rect)
	FillRect(r Rect, c color.Color)
}

// Redraw installs t on s and repaints the visible window of a w×h device
// surface with the background. Painted strokes are not retained, so they
// are lost.
func Redraw(s Surface, t state.Transform, w, h float64) {
	s.SetViewport(t)
	vw, vh := t.Visible(w, h)
	r := Rect{W: vw, H: vh}
	s.ClearRect(r)
	s.FillRect(r, Background)
}
