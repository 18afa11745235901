package capture_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PinchBoard/internal/capture"
	"PinchBoard/internal/render"
	"PinchBoard/internal/state"
	"PinchBoard/internal/style"
)

type fixedTransform state.Transform

func (f fixedTransform) Transform() state.Transform { return state.Transform(f) }

func newCapture(t state.Transform, sel *style.Selector) (*capture.Capture, *render.Recorder) {
	rec := &render.Recorder{}
	c := capture.New(fixedTransform(t), sel, nil)
	c.Attach(rec)
	return c, rec
}

func TestMouseDrawIdentity(t *testing.T) {
	c, rec := newCapture(state.Identity(), style.NewSelector(style.Solid))

	c.Start(state.Pt(100, 100), 0)
	c.Extend(state.Pt(200, 200), 0)
	c.End()

	assert.Equal(t, []state.Point{state.Pt(100, 100), state.Pt(200, 200)}, rec.Points())
	ops := []render.Op{render.OpBeginPath, render.OpMoveTo, render.OpLineTo, render.OpStroke, render.OpBeginPath}
	require.Len(t, rec.Calls, len(ops))
	for i, op := range ops {
		assert.Equal(t, op, rec.Calls[i].Op, "call %d", i)
	}
}

func TestMouseDrawScaledAndShifted(t *testing.T) {
	tr := state.Transform{Scale: 2, TranslateX: 50, TranslateY: 50}
	c, rec := newCapture(tr, style.NewSelector(style.Solid))

	c.Start(state.Pt(100, 100), 0)
	c.Extend(state.Pt(200, 200), 0)

	assert.Equal(t, []state.Point{state.Pt(25, 25), state.Pt(75, 75)}, rec.Points())
}

func TestMultiTouchGating(t *testing.T) {
	c, rec := newCapture(state.Identity(), style.NewSelector(style.Solid))

	c.Start(state.Pt(1, 1), 2)
	c.Extend(state.Pt(2, 2), 2)
	assert.False(t, c.Active())
	assert.Zero(t, rec.Count(render.OpBeginPath))
	assert.Zero(t, rec.Count(render.OpLineTo))

	c.Start(state.Pt(1, 1), 1)
	rec.Reset()
	c.Extend(state.Pt(2, 2), 3)
	assert.True(t, c.Active())
	assert.Zero(t, rec.Count(render.OpLineTo))
	assert.Zero(t, rec.Count(render.OpStroke))
}

func TestExtendWithoutStart(t *testing.T) {
	c, rec := newCapture(state.Identity(), style.NewSelector(style.Solid))
	c.Extend(state.Pt(5, 5), 0)
	assert.Empty(t, rec.Calls)
}

func TestNoBackendIsNoop(t *testing.T) {
	c := capture.New(fixedTransform(state.Identity()), style.NewSelector(style.Solid), nil)
	c.Start(state.Pt(1, 1), 0)
	c.Extend(state.Pt(2, 2), 0)
	c.End()
	assert.False(t, c.Active())
}

func TestEndResetsPath(t *testing.T) {
	c, rec := newCapture(state.Identity(), style.NewSelector(style.Solid))
	c.Start(state.Pt(1, 1), 0)
	c.End()
	assert.False(t, c.Active())
	assert.Equal(t, render.OpBeginPath, rec.Calls[len(rec.Calls)-1].Op)

	c.Extend(state.Pt(2, 2), 0)
	assert.Zero(t, rec.Count(render.OpLineTo))
}

func TestStyleSwitchMidStroke(t *testing.T) {
	sel := style.NewSelector(style.Solid)
	c, rec := newCapture(state.Identity(), sel)

	sel.Select(style.Neon)
	c.Start(state.Pt(0, 0), 0)
	c.Extend(state.Pt(10, 0), 0)
	c.Extend(state.Pt(20, 0), 0)
	sel.Select(style.Dashed)
	c.Extend(state.Pt(30, 0), 0)
	c.Extend(state.Pt(40, 0), 0)

	strokes := rec.Strokes()
	require.Len(t, strokes, 4)
	assert.Equal(t, style.Lookup(style.Neon), strokes[0])
	assert.Equal(t, style.Lookup(style.Neon), strokes[1])
	assert.Equal(t, style.Lookup(style.Dashed), strokes[2])
	assert.Equal(t, style.Lookup(style.Dashed), strokes[3])
}

func TestSessionBookkeeping(t *testing.T) {
	c, _ := newCapture(state.Identity(), style.NewSelector(style.Solid))
	var segs [][2]state.Point
	c.OnSegment = func(from, to state.Point) { segs = append(segs, [2]state.Point{from, to}) }

	c.Start(state.Pt(0, 0), 1)
	first := c.Session()
	require.NotNil(t, first)
	c.Extend(state.Pt(3, 4), 1)
	c.Extend(state.Pt(6, 8), 1)
	assert.Equal(t, 2, first.Segments)
	assert.Equal(t, [][2]state.Point{
		{state.Pt(0, 0), state.Pt(3, 4)},
		{state.Pt(3, 4), state.Pt(6, 8)},
	}, segs)

	c.End()
	c.Start(state.Pt(0, 0), 0)
	assert.NotEqual(t, first.ID, c.Session().ID)
}

func TestStrokeErrorDoesNotEndSession(t *testing.T) {
	c, rec := newCapture(state.Identity(), style.NewSelector(style.Solid))
	rec.Err = errors.New("boom")

	c.Start(state.Pt(0, 0), 0)
	c.Extend(state.Pt(1, 1), 0)
	assert.True(t, c.Active())
	assert.Equal(t, 1, c.Session().Segments)
}
