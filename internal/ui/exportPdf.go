package ui

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"PinchBoard/internal/export"
)

// Exporter saves snapshots of the surface through file dialogs.
type Exporter struct {
	window  fyne.Window
	surface Snapshotter
	status  *Status
	log     *slog.Logger
}

// NewExporter returns an exporter for surface shown in window.
func NewExporter(window fyne.Window, surface Snapshotter, status *Status, log *slog.Logger) *Exporter {
	return &Exporter{window: window, surface: surface, status: status, log: log}
}

// SavePNG asks for a file and writes the surface as PNG.
func (e *Exporter) SavePNG() {
	e.save("board.png", ".png", export.PNG)
}

// SavePDF asks for a file and writes the surface onto a PDF page.
func (e *Exporter) SavePDF() {
	e.save("board.pdf", ".pdf", export.PDF)
}

func (e *Exporter) save(name, ext string, write func(io.Writer, image.Image) error) {
	// Snapshot now so strokes painted while the dialog is open are left out.
	img := e.surface.Image()
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if w == nil {
			return
		}
		if err := writeAndClose(w, img, write); err != nil {
			e.log.Error("export failed", "uri", w.URI().String(), "err", err)
			dialog.ShowError(err, e.window)
			e.status.Set("Export failed")
			return
		}
		e.log.Info("exported snapshot", "uri", w.URI().String())
		e.status.Set("Saved " + w.URI().Name())
	}, e.window)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func writeAndClose(w fyne.URIWriteCloser, img image.Image, write func(io.Writer, image.Image) error) error {
	werr := write(w, img)
	cerr := w.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("close %s: %w", w.URI().Name(), cerr)
	}
	return nil
}
