package state

// GestureState is the baseline carried between frames of one pinch.
//
// A zero LastPinchDistance means no distance baseline exists yet. The pan
// baseline has its own flag so a centroid sitting exactly on an axis still
// counts as recorded.
type GestureState struct {
	LastPinchDistance float64
	LastPanCenter     Point
	HasPanCenter      bool
}

// HasBaseline reports whether a distance baseline has been recorded.
func (gs GestureState) HasBaseline() bool {
	return gs.LastPinchDistance != 0
}

// Pinch applies one two-finger frame to t.
//
// The first frame after a reset only records the distance baseline, so the
// scale does not jump from an undefined prior distance. The scale is clamped
// to l after the delta is applied. Translation follows the movement of the
// centroid between a and b once a previous centroid exists.
func Pinch(gs GestureState, t Transform, a, b Point, l Limits) (GestureState, Transform) {
	d := Distance(a, b)
	if gs.HasBaseline() {
		t.Scale = l.Clamp(t.Scale + (d-gs.LastPinchDistance)*l.PinchSensitivity)
	}
	gs.LastPinchDistance = d

	c := Midpoint(a, b)
	if gs.HasPanCenter {
		t = t.Translate(c.Sub(gs.LastPanCenter))
	}
	gs.LastPanCenter = c
	gs.HasPanCenter = true
	return gs, t
}

// EndPinch returns the state a new pinch starts from.
func EndPinch(GestureState) GestureState {
	return GestureState{}
}
