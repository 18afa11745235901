// Package input routes pointer and touch events to the gesture and stroke
// engines on a single goroutine.
package input

import (
	"fmt"

	"PinchBoard/internal/state"
)

// Kind is the type of an input event.
type Kind string

const (
	PointerDown  Kind = "pointer_down"
	PointerMove  Kind = "pointer_move"
	PointerUp    Kind = "pointer_up"
	PointerLeave Kind = "pointer_leave"
	TouchStart   Kind = "touch_start"
	TouchMove    Kind = "touch_move"
	TouchEnd     Kind = "touch_end"
	TouchCancel  Kind = "touch_cancel"
)

// IsTouch reports whether k carries a touch list rather than a position.
func (k Kind) IsTouch() bool {
	switch k {
	case TouchStart, TouchMove, TouchEnd, TouchCancel:
		return true
	}
	return false
}

// Event is one input sample in device coordinates. Pointer events use X and
// Y; touch events list every touch active after the event, in order.
//
// Events double as the remote feed wire format, encoded as JSON.
type Event struct {
	Kind    Kind          `json:"kind"`
	X       float64       `json:"x,omitempty"`
	Y       float64       `json:"y,omitempty"`
	Touches []state.Point `json:"touches,omitempty"`

	// Seq is the arrival order, assigned by the Loop when it handles e.
	Seq uint64 `json:"-"`
	// Source names the producer, e.g. "local" or a remote peer id.
	Source string `json:"-"`
}

// Pointer builds a pointer event at (x, y).
func Pointer(k Kind, x, y float64) Event {
	return Event{Kind: k, X: x, Y: y}
}

// Touch builds a touch event with the given active touches.
func Touch(k Kind, touches ...state.Point) Event {
	return Event{Kind: k, Touches: touches}
}

// Position returns the pointer position of a pointer event.
func (e Event) Position() state.Point { return state.Pt(e.X, e.Y) }

// Validate rejects events the dispatcher could not interpret.
func (e Event) Validate() error {
	switch e.Kind {
	case PointerDown, PointerMove, PointerUp, PointerLeave:
		if len(e.Touches) > 0 {
			return fmt.Errorf("pointer event %s carries %d touches", e.Kind, len(e.Touches))
		}
	case TouchStart, TouchMove, TouchEnd, TouchCancel:
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
	return nil
}
