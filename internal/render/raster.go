package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/gogpu/gg"

	"PinchBoard/internal/state"
	"PinchBoard/internal/style"
)

// glowPasses is how many widening under-strokes make up a glow.
const glowPasses = 3

// Raster paints onto a gg pixel buffer.
//
// gg consumes its path on every Stroke, so Raster keeps the path cursor
// itself: LineTo queues points after the cursor and Stroke paints the queued
// run and advances the cursor to its end. The dash phase carries over
// between runs of the same path so a dashed stroke does not restart its
// pattern at every segment.
//
// Raster is safe for concurrent use; the UI reads snapshots while the event
// loop paints.
type Raster struct {
	mu        sync.RWMutex
	dc        *gg.Context
	width     int
	height    int
	viewport  state.Transform
	cursor    state.Point
	hasCursor bool
	pending   []state.Point
	dashPhase float64

	// continuing is set once a run of the current subpath has been painted.
	continuing bool

	log *slog.Logger
}

var _ Surface = (*Raster)(nil)

// NewRaster returns a w×h surface filled with Background.
func NewRaster(w, h int, log *slog.Logger) *Raster {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := &Raster{
		dc:       gg.NewContext(w, h),
		width:    w,
		height:   h,
		viewport: state.Identity(),
		log:      log.With("component", "raster"),
	}
	r.dc.ClearWithColor(rgba(Background, 1))
	return r
}

// Size returns the device size of the surface.
func (r *Raster) Size() (int, int) { return r.width, r.height }

// Viewport returns the transform installed by the last SetViewport.
func (r *Raster) Viewport() state.Transform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.viewport
}

// BeginPath drops the cursor and any queued points.
func (r *Raster) BeginPath() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hasCursor = false
	r.continuing = false
	r.pending = r.pending[:0]
	r.dashPhase = 0
}

// MoveTo places the cursor at p, discarding queued points.
func (r *Raster) MoveTo(p state.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = p
	r.hasCursor = true
	r.continuing = false
	r.pending = r.pending[:0]
}

// LineTo queues p after the cursor.
func (r *Raster) LineTo(p state.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasCursor {
		r.cursor = p
		r.hasCursor = true
		return
	}
	r.pending = append(r.pending, p)
}

// Stroke paints the queued run with p and advances the cursor.
//
// Widths, dash lengths and glow spread stay in logical units; gg scales
// them by the installed matrix, so a width-10 line at scale 2 is 20 device
// pixels wide.
func (r *Raster) Stroke(p style.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasCursor || len(r.pending) == 0 {
		return nil
	}

	if p.Glows() {
		// Halos of a continuing run get butt caps so they stop at the run's
		// start instead of reaching back over the core already painted.
		glowCap := gg.LineCapRound
		if r.continuing {
			glowCap = gg.LineCapButt
		}
		for i := glowPasses; i >= 1; i-- {
			spread := p.Glow.Radius * float64(i) / glowPasses
			alpha := p.Opacity / float64(glowPasses+1)
			if err := r.strokeRun(p.LineWidth+2*spread, glowCap, nil, rgba(p.Glow.Color, alpha)); err != nil {
				return fmt.Errorf("glow pass %d: %w", i, err)
			}
		}
	}
	if err := r.strokeRun(p.LineWidth, gg.LineCapRound, p.Dash, rgba(p.Color, p.Opacity)); err != nil {
		return fmt.Errorf("stroke %s: %w", p.Variant, err)
	}

	length := 0.0
	prev := r.cursor
	for _, q := range r.pending {
		length += state.Distance(prev, q)
		prev = q
	}
	r.dashPhase += length
	r.cursor = prev
	r.pending = r.pending[:0]
	r.continuing = true
	return nil
}

func (r *Raster) strokeRun(width float64, lineCap gg.LineCap, dash []float64, c gg.RGBA) error {
	st := gg.DefaultStroke().
		WithWidth(width).
		WithCap(lineCap).
		WithJoin(gg.LineJoinRound)
	if len(dash) > 0 {
		st = st.WithDashPattern(dash...).WithDashOffset(r.dashPhase)
	}
	r.dc.SetStroke(st)
	r.dc.SetRGBA(c.R, c.G, c.B, c.A)
	r.dc.MoveTo(r.cursor.X, r.cursor.Y)
	for _, q := range r.pending {
		r.dc.LineTo(q.X, q.Y)
	}
	return r.dc.Stroke()
}

// SetViewport makes t map logical coordinates onto the buffer.
func (r *Raster) SetViewport(t state.Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = t
	r.dc.SetTransform(gg.Matrix{
		A: t.Scale, B: 0, C: t.TranslateX,
		D: 0, E: t.Scale, F: t.TranslateY,
	})
}

// ClearRect makes the logical rectangle rect transparent.
func (r *Raster) ClearRect(rect Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lo := state.ToDevice(state.Pt(rect.X, rect.Y), r.viewport)
	hi := state.ToDevice(state.Pt(rect.X+rect.W, rect.Y+rect.H), r.viewport)
	x0 := clampInt(int(math.Floor(lo.X)), 0, r.width)
	y0 := clampInt(int(math.Floor(lo.Y)), 0, r.height)
	x1 := clampInt(int(math.Ceil(hi.X)), 0, r.width)
	y1 := clampInt(int(math.Ceil(hi.Y)), 0, r.height)
	if x0 == 0 && y0 == 0 && x1 == r.width && y1 == r.height {
		r.dc.Clear()
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.dc.SetPixel(x, y, gg.Transparent)
		}
	}
}

// FillRect paints the logical rectangle rect with c.
func (r *Raster) FillRect(rect Rect, c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.SetColor(c)
	r.dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	if err := r.dc.Fill(); err != nil {
		r.log.Warn("fill failed", "err", err)
	}
}

// Image returns a snapshot of the buffer.
func (r *Raster) Image() image.Image {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dc.Image()
}

// EncodePNG writes the buffer to w as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dc.EncodePNG(w)
}

// Close releases the gg context.
func (r *Raster) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dc.Close()
}

func rgba(c color.NRGBA, opacity float64) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
		A: float64(c.A) / 0xff * opacity,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
