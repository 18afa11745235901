package render

import (
	"image/color"

	"PinchBoard/internal/state"
	"PinchBoard/internal/style"
)

// Op names the backend calls a Recorder logs.
type Op string

const (
	OpBeginPath   Op = "begin_path"
	OpMoveTo      Op = "move_to"
	OpLineTo      Op = "line_to"
	OpStroke      Op = "stroke"
	OpSetViewport Op = "set_viewport"
	OpClearRect   Op = "clear_rect"
	OpFillRect    Op = "fill_rect"
)

// Call is one recorded backend operation. Only the fields relevant to Op
// are set.
type Call struct {
	Op        Op
	Point     state.Point
	Profile   style.Profile
	Transform state.Transform
	Rect      Rect
	Color     color.Color
}

// Recorder is a Surface that paints nothing and remembers every call.
type Recorder struct {
	Calls []Call

	// Err, when set, is returned from Stroke.
	Err error
}

var _ Surface = (*Recorder)(nil)

func (r *Recorder) BeginPath() { r.Calls = append(r.Calls, Call{Op: OpBeginPath}) }

func (r *Recorder) MoveTo(p state.Point) { r.Calls = append(r.Calls, Call{Op: OpMoveTo, Point: p}) }

func (r *Recorder) LineTo(p state.Point) { r.Calls = append(r.Calls, Call{Op: OpLineTo, Point: p}) }

func (r *Recorder) Stroke(p style.Profile) error {
	r.Calls = append(r.Calls, Call{Op: OpStroke, Profile: p})
	return r.Err
}

func (r *Recorder) SetViewport(t state.Transform) {
	r.Calls = append(r.Calls, Call{Op: OpSetViewport, Transform: t})
}

func (r *Recorder) ClearRect(rect Rect) {
	r.Calls = append(r.Calls, Call{Op: OpClearRect, Rect: rect})
}

func (r *Recorder) FillRect(rect Rect, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpFillRect, Rect: rect, Color: c})
}

// Count returns how many calls of kind op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Points returns the targets of MoveTo and LineTo calls in order.
func (r *Recorder) Points() []state.Point {
	var pts []state.Point
	for _, c := range r.Calls {
		if c.Op == OpMoveTo || c.Op == OpLineTo {
			pts = append(pts, c.Point)
		}
	}
	return pts
}

// Strokes returns the profile passed to each Stroke call in order.
func (r *Recorder) Strokes() []style.Profile {
	var ps []style.Profile
	for _, c := range r.Calls {
		if c.Op == OpStroke {
			ps = append(ps, c.Profile)
		}
	}
	return ps
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() { r.Calls = nil }
