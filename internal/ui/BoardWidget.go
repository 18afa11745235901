package ui

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"PinchBoard/internal/input"
	"PinchBoard/internal/state"
)

// Poster accepts input events for the board's event loop.
type Poster interface {
	Post(ctx context.Context, e input.Event) error
}

// Snapshotter provides the painted pixels and their size.
type Snapshotter interface {
	Image() image.Image
	Size() (int, int)
}

// BoardWidget shows the painted surface and turns fyne pointer and touch
// callbacks into board input events.
type BoardWidget struct {
	widget.BaseWidget
	ctx     context.Context
	board   Poster
	surface Snapshotter
	image   *canvas.Image
	pending atomic.Bool
	log     *slog.Logger
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

// NewBoardWidget returns a widget posting to board and displaying surface.
func NewBoardWidget(ctx context.Context, board Poster, surface Snapshotter, log *slog.Logger) *BoardWidget {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	w, h := surface.Size()
	img := canvas.NewImageFromImage(surface.Image())
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleFastest
	img.SetMinSize(fyne.NewSize(float32(w)/2, float32(h)/2))

	b := &BoardWidget{
		ctx:     ctx,
		board:   board,
		surface: surface,
		image:   img,
		log:     log.With("component", "ui"),
	}
	b.ExtendBaseWidget(b)
	return b
}

// Invalidate schedules a repaint from the surface. It is safe to call from
// any goroutine; calls made before the repaint runs are coalesced.
func (b *BoardWidget) Invalidate() {
	if !b.pending.CompareAndSwap(false, true) {
		return
	}
	fyne.Do(func() {
		b.pending.Store(false)
		b.image.Image = b.surface.Image()
		b.image.Refresh()
	})
}

// device maps a widget position onto surface pixels.
func (b *BoardWidget) device(pos fyne.Position) state.Point {
	size := b.Size()
	w, h := b.surface.Size()
	if size.Width == 0 || size.Height == 0 {
		return state.Pt(float64(pos.X), float64(pos.Y))
	}
	return state.Pt(
		float64(pos.X)/float64(size.Width)*float64(w),
		float64(pos.Y)/float64(size.Height)*float64(h),
	)
}

func (b *BoardWidget) post(e input.Event) {
	e.Source = "local"
	if err := b.board.Post(b.ctx, e); err != nil {
		b.log.Debug("input dropped", "kind", e.Kind, "err", err)
	}
}

func (b *BoardWidget) pointer(k input.Kind, pos fyne.Position) {
	p := b.device(pos)
	b.post(input.Pointer(k, p.X, p.Y))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pointer(input.PointerDown, e.Position)
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pointer(input.PointerUp, e.Position)
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.pointer(input.PointerMove, e.Position)
}

func (b *BoardWidget) DragEnd() {
	b.post(input.Event{Kind: input.PointerUp})
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.pointer(input.PointerMove, e.Position)
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseOut() {
	b.post(input.Event{Kind: input.PointerLeave})
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.post(input.Touch(input.TouchStart, b.device(e.Position)))
}

func (b *BoardWidget) TouchUp(*mobile.TouchEvent) {
	b.post(input.Touch(input.TouchEnd))
}

func (b *BoardWidget) TouchCancel(*mobile.TouchEvent) {
	b.post(input.Touch(input.TouchCancel))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.image)
}
