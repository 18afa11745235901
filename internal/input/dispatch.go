package input

import "PinchBoard/internal/state"

// Gesture receives two-finger frames.
type Gesture interface {
	OnPinchFrame(a, b state.Point)
	OnPinchEnd()
}

// Stroke receives single-pointer samples.
type Stroke interface {
	Start(sample state.Point, touches int)
	Extend(sample state.Point, touches int)
	End()
}

// Dispatcher applies the routing rule: one touch or a mouse draws, two
// touches pinch, anything else is ignored.
//
// Input from every source shares one gesture and one stroke. A TouchCancel
// only applies when it comes from the source that last began a stroke or
// pinched, so a remote device dropping off does not cut a local stroke.
type Dispatcher struct {
	gesture Gesture
	stroke  Stroke
	owner   string
}

// NewDispatcher returns a dispatcher feeding g and s.
func NewDispatcher(g Gesture, s Stroke) *Dispatcher {
	return &Dispatcher{gesture: g, stroke: s}
}

// Handle routes e.
func (d *Dispatcher) Handle(e Event) {
	switch e.Kind {
	case PointerDown:
		d.owner = e.Source
		d.stroke.Start(e.Position(), 0)
	case PointerMove:
		d.stroke.Extend(e.Position(), 0)
	case PointerUp, PointerLeave:
		d.stroke.End()

	case TouchStart:
		if len(e.Touches) == 0 {
			return
		}
		d.owner = e.Source
		d.stroke.Start(e.Touches[0], len(e.Touches))
	case TouchMove:
		switch len(e.Touches) {
		case 1:
			d.stroke.Extend(e.Touches[0], 1)
		case 2:
			d.owner = e.Source
			d.gesture.OnPinchFrame(e.Touches[0], e.Touches[1])
		}
	case TouchEnd, TouchCancel:
		if e.Kind == TouchCancel && e.Source != d.owner {
			return
		}
		// The pinch baseline goes first so a lifted finger cannot draw
		// against a stale gesture.
		d.gesture.OnPinchEnd()
		d.stroke.End()
	}
}
