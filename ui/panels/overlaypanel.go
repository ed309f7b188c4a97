// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"medview/internal/app"
	"medview/internal/overlay"
)

// OverlayPanel toggles and tunes the three overlay layers.
type OverlayPanel struct {
	state     *app.State
	container *fyne.Container

	heatmapCheck      *widget.Check
	segmentationCheck *widget.Check
	annotationCheck   *widget.Check
	heatmapOpacity    *widget.Slider
	segOpacity        *widget.Slider
	modeRadio         *widget.RadioGroup
}

// NewOverlayPanel creates the overlay control panel.
func NewOverlayPanel(state *app.State, onChange func()) *OverlayPanel {
	op := &OverlayPanel{state: state}

	notify := func() {
		state.Emit(app.EventOverlayChanged, nil)
		if onChange != nil {
			onChange()
		}
	}

	op.heatmapCheck = widget.NewCheck("Heatmap (h)", func(v bool) {
		state.Overlays.SetVisible(overlay.LayerHeatmap, v)
		notify()
	})
	op.segmentationCheck = widget.NewCheck("Segmentation (s)", func(v bool) {
		state.Overlays.SetVisible(overlay.LayerSegmentation, v)
		notify()
	})
	op.annotationCheck = widget.NewCheck("Annotations (a)", func(v bool) {
		state.Overlays.SetVisible(overlay.LayerAnnotation, v)
		notify()
	})

	op.heatmapOpacity = widget.NewSlider(0, 1)
	op.heatmapOpacity.Step = 0.05
	op.heatmapOpacity.OnChanged = func(v float64) {
		state.Overlays.SetOpacity(overlay.LayerHeatmap, v)
		notify()
	}

	op.segOpacity = widget.NewSlider(0, 1)
	op.segOpacity.Step = 0.05
	op.segOpacity.OnChanged = func(v float64) {
		state.Overlays.SetOpacity(overlay.LayerSegmentation, v)
		notify()
	}

	op.modeRadio = widget.NewRadioGroup([]string{"Filled", "Contour", "Both"}, func(sel string) {
		switch sel {
		case "Contour":
			state.Overlays.SetMode(overlay.RenderContour)
		case "Both":
			state.Overlays.SetMode(overlay.RenderBoth)
		default:
			state.Overlays.SetMode(overlay.RenderFilled)
		}
		notify()
	})

	op.Sync()

	op.container = container.NewVBox(
		widget.NewLabelWithStyle("Overlays", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		op.heatmapCheck,
		op.heatmapOpacity,
		op.segmentationCheck,
		op.segOpacity,
		widget.NewLabel("Segmentation style"),
		op.modeRadio,
		op.annotationCheck,
	)

	return op
}

// Sync refreshes the widgets from the overlay settings, e.g. after a
// keyboard toggle.
func (op *OverlayPanel) Sync() {
	op.heatmapCheck.SetChecked(op.state.Overlays.Visible(overlay.LayerHeatmap))
	op.segmentationCheck.SetChecked(op.state.Overlays.Visible(overlay.LayerSegmentation))
	op.annotationCheck.SetChecked(op.state.Overlays.Visible(overlay.LayerAnnotation))
	op.heatmapOpacity.Value = op.state.Overlays.Opacity(overlay.LayerHeatmap)
	op.segOpacity.Value = op.state.Overlays.Opacity(overlay.LayerSegmentation)

	switch op.state.Overlays.Mode() {
	case overlay.RenderContour:
		op.modeRadio.Selected = "Contour"
	case overlay.RenderBoth:
		op.modeRadio.Selected = "Both"
	default:
		op.modeRadio.Selected = "Filled"
	}
	op.heatmapOpacity.Refresh()
	op.segOpacity.Refresh()
	op.modeRadio.Refresh()
}

// Container returns the panel container.
func (op *OverlayPanel) Container() fyne.CanvasObject {
	return op.container
}
