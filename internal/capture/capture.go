// Package capture turns single-pointer samples into painted stroke segments.
package capture

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"PinchBoard/internal/state"
	"PinchBoard/internal/style"
)

// Backend is the path and paint surface strokes are rendered onto. Points
// are in logical space.
type Backend interface {
	BeginPath()
	MoveTo(p state.Point)
	LineTo(p state.Point)
	Stroke(p style.Profile) error
}

// TransformSource exposes the current viewport transform read-only.
type TransformSource interface {
	Transform() state.Transform
}

// ProfileSource exposes the active stroke profile.
type ProfileSource interface {
	Active() style.Profile
}

// Session is one stroke from press to release.
type Session struct {
	ID       uuid.UUID
	Started  time.Time
	Segments int
}

// Capture drives a Backend from pointer samples. Each segment is painted as
// soon as it is captured; nothing is buffered or replayed.
type Capture struct {
	backend   Backend
	transform TransformSource
	profile   ProfileSource
	session   *Session
	last      state.Point
	log       *slog.Logger

	// OnSegment is called after a segment has been painted.
	OnSegment func(from, to state.Point)
}

// New returns a Capture without a backend; Attach one before drawing.
func New(ts TransformSource, ps ProfileSource, log *slog.Logger) *Capture {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Capture{
		transform: ts,
		profile:   ps,
		log:       log.With("component", "capture"),
	}
}

// Attach sets the backend. Passing nil turns every operation into a no-op.
func (c *Capture) Attach(b Backend) {
	c.backend = b
}

// Active reports whether a stroke is in progress.
func (c *Capture) Active() bool { return c.session != nil }

// Session returns the stroke in progress, or nil.
func (c *Capture) Session() *Session { return c.session }

// Start begins a stroke at sample. touches is the number of concurrent
// touches reported with the sample (0 for a mouse); more than one is left
// to the pinch gesture.
func (c *Capture) Start(sample state.Point, touches int) {
	if touches > 1 || c.backend == nil {
		return
	}
	c.session = &Session{ID: uuid.New(), Started: time.Now()}
	p := c.logical(sample)
	c.backend.BeginPath()
	c.backend.MoveTo(p)
	c.log.Debug("stroke started", "session", c.session.ID, "x", p.X, "y", p.Y)
	c.last = p
}

// Extend adds a segment to the stroke in progress and paints it.
func (c *Capture) Extend(sample state.Point, touches int) {
	if c.session == nil || touches > 1 || c.backend == nil {
		return
	}
	p := c.logical(sample)
	c.backend.LineTo(p)
	if err := c.backend.Stroke(c.profile.Active()); err != nil {
		c.log.Warn("stroke segment failed", "session", c.session.ID, "err", err)
	}
	c.session.Segments++
	if c.OnSegment != nil {
		c.OnSegment(c.last, p)
	}
	c.last = p
}

// End finishes the stroke and resets the backend path so the next stroke
// does not join onto this one.
func (c *Capture) End() {
	if c.session != nil {
		c.log.Debug("stroke ended", "session", c.session.ID,
			"segments", c.session.Segments, "elapsed", time.Since(c.session.Started))
	}
	c.session = nil
	if c.backend != nil {
		c.backend.BeginPath()
	}
}

func (c *Capture) logical(sample state.Point) state.Point {
	return state.ToLogical(sample, c.transform.Transform())
}
