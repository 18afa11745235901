package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PinchBoard/internal/config"
	"PinchBoard/internal/input"
	"PinchBoard/internal/render"
	"PinchBoard/internal/state"
	"PinchBoard/internal/style"
)

type harness struct {
	t     *testing.T
	ctx   context.Context
	board *Board
	rec   *render.Recorder
}

func newHarness(t *testing.T, cfg config.Config) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rec := &render.Recorder{}
	b := New(cfg, rec, nil)
	go b.Run(ctx)
	return &harness{t: t, ctx: ctx, board: b, rec: rec}
}

func (h *harness) post(events ...input.Event) {
	for _, e := range events {
		require.NoError(h.t, h.board.Post(h.ctx, e))
	}
}

// sync waits until everything queued so far has been handled.
func (h *harness) sync() {
	done := make(chan struct{})
	require.NoError(h.t, h.board.loop.Do(h.ctx, func() { close(done) }))
	<-done
}

// inLoop runs fn on the loop goroutine and waits for it.
func (h *harness) inLoop(fn func()) {
	done := make(chan struct{})
	require.NoError(h.t, h.board.loop.Do(h.ctx, func() { fn(); close(done) }))
	<-done
}

func TestNewPaintsBackground(t *testing.T) {
	h := newHarness(t, config.Default())
	h.sync()
	require.Len(t, h.rec.Calls, 3)
	assert.Equal(t, render.OpSetViewport, h.rec.Calls[0].Op)
	assert.Equal(t, state.Identity(), h.rec.Calls[0].Transform)
	assert.Equal(t, render.Rect{W: 1024, H: 768}, h.rec.Calls[1].Rect)
}

func TestPinchRedrawsViewport(t *testing.T) {
	h := newHarness(t, config.Default())
	h.sync()
	h.rec.Reset()

	h.post(
		input.Touch(input.TouchMove, state.Pt(100, 100), state.Pt(250, 100)),
		input.Touch(input.TouchMove, state.Pt(100, 100), state.Pt(280, 100)),
	)
	h.sync()

	var viewports []state.Transform
	for _, c := range h.rec.Calls {
		if c.Op == render.OpSetViewport {
			viewports = append(viewports, c.Transform)
		}
	}
	require.Len(t, viewports, 2)
	assert.Equal(t, 1.0, viewports[0].Scale)
	assert.InDelta(t, 1.15, viewports[1].Scale, 1e-12)
	assert.Zero(t, h.rec.Count(render.OpLineTo))

	var tr state.Transform
	h.inLoop(func() { tr = h.board.Transform() })
	assert.InDelta(t, 1.15, tr.Scale, 1e-12)
	assert.Equal(t, 15.0, tr.TranslateX)
}

func TestTouchEndResetsBeforeStrayDraw(t *testing.T) {
	h := newHarness(t, config.Default())

	h.post(
		input.Touch(input.TouchStart, state.Pt(10, 10)),
		input.Touch(input.TouchStart, state.Pt(10, 10), state.Pt(60, 10)),
		input.Touch(input.TouchMove, state.Pt(10, 10), state.Pt(60, 10)),
		input.Touch(input.TouchMove, state.Pt(0, 10), state.Pt(80, 10)),
		input.Touch(input.TouchEnd, state.Pt(0, 10)),
	)
	h.sync()
	h.rec.Reset()

	// The remaining finger keeps moving: no stroke is open any more.
	h.post(input.Touch(input.TouchMove, state.Pt(5, 15)))
	h.sync()
	assert.Zero(t, h.rec.Count(render.OpLineTo))

	var gs state.GestureState
	h.inLoop(func() { gs = h.board.tracker.State() })
	assert.Equal(t, state.GestureState{}, gs)
}

func TestMouseStrokeUnderTransform(t *testing.T) {
	cfg := config.Default()
	cfg.Limits.InitialScale = 2
	h := newHarness(t, cfg)
	h.inLoop(func() { h.board.tracker.Reset(state.Transform{Scale: 2, TranslateX: 50, TranslateY: 50}) })
	h.rec.Reset()

	h.post(
		input.Pointer(input.PointerDown, 100, 100),
		input.Pointer(input.PointerMove, 200, 200),
		input.Pointer(input.PointerUp, 200, 200),
	)
	h.sync()
	assert.Equal(t, []state.Point{state.Pt(25, 25), state.Pt(75, 75)}, h.rec.Points())
}

func TestStyleSwitchMidStroke(t *testing.T) {
	h := newHarness(t, config.Default())
	var styles []style.Variant
	h.board.OnStyle = func(p style.Profile) { styles = append(styles, p.Variant) }

	require.NoError(t, h.board.Select(h.ctx, style.Neon))
	h.post(
		input.Pointer(input.PointerDown, 0, 0),
		input.Pointer(input.PointerMove, 10, 0),
	)
	require.NoError(t, h.board.Select(h.ctx, style.Dashed))
	h.post(input.Pointer(input.PointerMove, 20, 0))
	h.sync()

	strokes := h.rec.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, style.Neon, strokes[0].Variant)
	assert.Equal(t, style.Dashed, strokes[1].Variant)
	assert.Equal(t, []style.Variant{style.Neon, style.Dashed}, styles)

	var active style.Variant
	h.inLoop(func() { active = h.board.Style() })
	assert.Equal(t, style.Dashed, active)
}

func TestResetViewEndsStroke(t *testing.T) {
	h := newHarness(t, config.Default())
	frames := 0
	h.board.OnFrame = func() { frames++ }

	h.post(
		input.Pointer(input.PointerDown, 0, 0),
		input.Touch(input.TouchMove, state.Pt(0, 0), state.Pt(100, 0)),
		input.Touch(input.TouchMove, state.Pt(0, 0), state.Pt(300, 0)),
	)
	require.NoError(t, h.board.ResetView(h.ctx))

	var (
		tr      state.Transform
		drawing bool
		n       int
	)
	h.inLoop(func() {
		tr = h.board.Transform()
		drawing = h.board.Drawing()
		n = frames
	})
	assert.Equal(t, state.Identity(), tr)
	assert.False(t, drawing)
	assert.Equal(t, 4, n)
}

func TestNilSurface(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := New(config.Default(), nil, nil)
	go b.Run(ctx)

	require.NoError(t, b.Post(ctx, input.Pointer(input.PointerDown, 1, 1)))
	done := make(chan bool)
	require.NoError(t, b.loop.Do(ctx, func() { done <- b.Drawing() }))
	assert.False(t, <-done)
}
