// Package export writes snapshots of the painted surface.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// pageMargin is the border left around the snapshot, in millimetres.
const pageMargin = 10.0

// PNG encodes img to w.
func PNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PDF writes img onto a single landscape A4 page, scaled to fit inside the
// margins with its aspect ratio kept.
func PDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := PNG(&buf, img); err != nil {
		return err
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle("PinchBoard snapshot", true)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opts, &buf)

	x, y, iw, ih := fit(p, img.Bounds())
	p.ImageOptions("board", x, y, iw, ih, false, opts, 0, "")
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func fit(p *gofpdf.Fpdf, b image.Rectangle) (x, y, w, h float64) {
	pw, ph := p.GetPageSize()
	aw, ah := pw-2*pageMargin, ph-2*pageMargin
	if b.Dx() == 0 || b.Dy() == 0 {
		return pageMargin, pageMargin, aw, ah
	}
	s := aw / float64(b.Dx())
	if hs := ah / float64(b.Dy()); hs < s {
		s = hs
	}
	w, h = float64(b.Dx())*s, float64(b.Dy())*s
	return (pw - w) / 2, (ph - h) / 2, w, h
}
