package ui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PinchBoard/internal/style"
)

// Controls is what the toolbar drives on the board.
type Controls interface {
	Select(ctx context.Context, v style.Variant) error
	ResetView(ctx context.Context) error
}

// styleLabels maps toolbar captions back to their variant.
func styleLabels() ([]string, map[string]style.Variant) {
	labels := make([]string, 0, len(style.Variants()))
	byLabel := make(map[string]style.Variant, len(style.Variants()))
	for _, v := range style.Variants() {
		labels = append(labels, v.Label())
		byLabel[v.Label()] = v
	}
	return labels, byLabel
}

// NewToolbar builds the style picker, view reset and export actions.
func NewToolbar(ctx context.Context, board Controls, initial style.Variant, exp *Exporter, log *slog.Logger) fyne.CanvasObject {
	labels, byLabel := styleLabels()
	styles := widget.NewRadioGroup(labels, func(selected string) {
		v, ok := byLabel[selected]
		if !ok {
			return
		}
		if err := board.Select(ctx, v); err != nil {
			log.Warn("style not applied", "style", v, "err", err)
		}
	})
	styles.Horizontal = true
	styles.Required = true
	styles.SetSelected(initial.Label())

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ViewRestoreIcon(), func() {
			if err := board.ResetView(ctx); err != nil {
				log.Warn("view not reset", "err", err)
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), exp.SavePNG),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), exp.SavePDF),
	)

	return container.NewHBox(
		widget.NewLabel("Style:"),
		styles,
		widget.NewSeparator(),
		tb,
		layout.NewSpacer(),
	)
}
