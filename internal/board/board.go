// Package board wires the gesture, stroke and style engines to a surface
// and an input loop.
package board

import (
	"context"
	"log/slog"

	"PinchBoard/internal/capture"
	"PinchBoard/internal/config"
	"PinchBoard/internal/input"
	"PinchBoard/internal/render"
	"PinchBoard/internal/state"
	"PinchBoard/internal/style"
)

// Board is one drawing session. Everything that touches the engines runs on
// the loop goroutine; other goroutines go through Post, Select and
// ResetView.
type Board struct {
	cfg      config.Config
	surface  render.Surface
	tracker  *state.GestureTracker
	selector *style.Selector
	capture  *capture.Capture
	loop     *input.Loop
	log      *slog.Logger

	// OnFrame runs on the loop goroutine whenever the surface may have
	// changed.
	OnFrame func()
	// OnStyle runs on the loop goroutine after a style selection.
	OnStyle func(style.Profile)
}

// New builds a board drawing onto surface. The surface is repainted with the
// background under the initial transform.
func New(cfg config.Config, surface render.Surface, log *slog.Logger) *Board {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	b := &Board{
		cfg:      cfg,
		surface:  surface,
		tracker:  state.NewGestureTracker(cfg.InitialTransform(), cfg.Limits.Limits, log),
		selector: style.NewSelector(cfg.Style),
		log:      log.With("component", "board"),
	}
	b.capture = capture.New(b.tracker, b.selector, log)
	if surface != nil {
		b.capture.Attach(surface)
	}
	b.tracker.OnChange = b.redraw
	b.selector.OnSelect = func(p style.Profile) {
		b.log.Info("style selected", "style", p.Variant)
		if b.OnStyle != nil {
			b.OnStyle(p)
		}
	}

	d := input.NewDispatcher(b.tracker, b.capture)
	b.loop = input.NewLoop(d.Handle, 0, log)
	b.loop.After = func(input.Event) { b.frame() }

	b.redraw(b.tracker.Transform())
	return b
}

// Run processes input until ctx is done.
func (b *Board) Run(ctx context.Context) error {
	return b.loop.Run(ctx)
}

// Post queues an input event.
func (b *Board) Post(ctx context.Context, e input.Event) error {
	return b.loop.Post(ctx, e)
}

// Select queues a style change. It applies from the next painted segment.
func (b *Board) Select(ctx context.Context, v style.Variant) error {
	return b.loop.Do(ctx, func() { b.selector.Select(v) })
}

// ResetView queues a return to the initial transform.
func (b *Board) ResetView(ctx context.Context) error {
	return b.loop.Do(ctx, func() {
		b.capture.End()
		b.tracker.Reset(b.cfg.InitialTransform())
		b.frame()
	})
}

// Transform returns the current viewport. Call it from the loop goroutine,
// e.g. inside OnFrame.
func (b *Board) Transform() state.Transform { return b.tracker.Transform() }

// Style returns the active variant. Call it from the loop goroutine.
func (b *Board) Style() style.Variant { return b.selector.Variant() }

// Drawing reports whether a stroke is in progress. Call it from the loop
// goroutine.
func (b *Board) Drawing() bool { return b.capture.Active() }

func (b *Board) redraw(t state.Transform) {
	if b.surface == nil {
		return
	}
	render.Redraw(b.surface, t, float64(b.cfg.Width), float64(b.cfg.Height))
}

func (b *Board) frame() {
	if b.OnFrame != nil {
		b.OnFrame()
	}
}
