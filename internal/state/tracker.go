package state

import (
	"log/slog"
)

// GestureTracker owns the viewport transform and the pinch baseline. It is
// driven from a single event goroutine and is not safe for concurrent use.
type GestureTracker struct {
	limits    Limits
	transform Transform
	gesture   GestureState
	log       *slog.Logger

	// OnChange is called with the new transform after every pinch frame.
	OnChange func(Transform)
}

// NewGestureTracker returns a tracker starting at initial. A nil logger
// discards output.
func NewGestureTracker(initial Transform, l Limits, log *slog.Logger) *GestureTracker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	initial.Scale = l.Clamp(initial.Scale)
	return &GestureTracker{
		limits:    l,
		transform: initial,
		log:       log.With("component", "gesture"),
	}
}

// Transform returns the current viewport transform.
func (g *GestureTracker) Transform() Transform { return g.transform }

// State returns the current pinch baseline.
func (g *GestureTracker) State() GestureState { return g.gesture }

// Limits returns the zoom bounds the tracker enforces.
func (g *GestureTracker) Limits() Limits { return g.limits }

// OnPinchFrame applies a frame with exactly two active touches.
func (g *GestureTracker) OnPinchFrame(a, b Point) {
	prev := g.transform
	g.gesture, g.transform = Pinch(g.gesture, g.transform, a, b, g.limits)

	if s := g.transform.Scale; s != prev.Scale && (s == g.limits.MinScale || s == g.limits.MaxScale) {
		g.log.Debug("scale reached limit", "scale", s)
	}
	if g.OnChange != nil {
		g.OnChange(g.transform)
	}
}

// OnPinchEnd drops the baseline so the next pinch starts cleanly.
func (g *GestureTracker) OnPinchEnd() {
	if g.gesture != (GestureState{}) {
		g.log.Debug("pinch ended", "scale", g.transform.Scale,
			"tx", g.transform.TranslateX, "ty", g.transform.TranslateY)
	}
	g.gesture = EndPinch(g.gesture)
}

// Reset returns the viewport to t and drops any pinch baseline.
func (g *GestureTracker) Reset(t Transform) {
	t.Scale = g.limits.Clamp(t.Scale)
	g.transform = t
	g.gesture = GestureState{}
	if g.OnChange != nil {
		g.OnChange(g.transform)
	}
}
