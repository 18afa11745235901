package ui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"PinchBoard/internal/style"
)

// Status is the one-line message bar under the board.
type Status struct {
	label *widget.Label
}

// NewStatus returns a status bar showing text.
func NewStatus(text string) *Status {
	return &Status{label: widget.NewLabel(text)}
}

// Set replaces the message. It is safe to call from any goroutine.
func (s *Status) Set(text string) {
	fyne.Do(func() { s.label.SetText(text) })
}

// Board is what the window needs from a drawing session.
type Board interface {
	Poster
	Controls
}

// Window bundles the fyne app and the widgets built around a board.
type Window struct {
	App    fyne.App
	Window fyne.Window
	Board  *BoardWidget
	Status *Status
}

// NewWindow builds the main window without showing it.
func NewWindow(ctx context.Context, board Board, surface Snapshotter, initial style.Variant, log *slog.Logger) *Window {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	a := app.NewWithID("io.pinchboard")
	win := a.NewWindow("PinchBoard")
	w, h := surface.Size()
	win.Resize(fyne.NewSize(float32(w), float32(h)))

	status := NewStatus("Ready")
	bw := NewBoardWidget(ctx, board, surface, log)
	exp := NewExporter(win, surface, status, log)
	toolbar := NewToolbar(ctx, board, initial, exp, log)

	win.SetContent(container.NewBorder(toolbar, status.label, nil, nil, bw))
	return &Window{App: a, Window: win, Board: bw, Status: status}
}

// ShowAndRun blocks until the window closes.
func (w *Window) ShowAndRun() {
	w.Window.ShowAndRun()
}
