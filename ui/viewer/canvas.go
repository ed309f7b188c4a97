package viewer

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"medview/internal/app"
	"medview/internal/measure"
	"medview/internal/overlay"
	"medview/internal/viewport"
	"medview/pkg/colorutil"
	"medview/pkg/geometry"
)

// FrameSource produces the base image for a slice. The main window supplies
// either the procedural renderer or a loader for real stored images.
type FrameSource func(slice int) *image.RGBA

// SliceCanvas displays one slice with its overlay layers, measurements, and
// pan/zoom interaction.
type SliceCanvas struct {
	widget.BaseWidget

	state  *app.State
	frames FrameSource

	raster *fynecanvas.Raster

	// Frame cache, invalidated when slice or preset changes.
	cachedSlice  int
	cachedPreset string
	cachedFrame  *image.RGBA

	// Last composited output for export.
	lastOutput *image.RGBA

	// Drag state
	dragging bool

	// zoomModifier reroutes the scroll wheel from slice scrub to zoom while
	// Ctrl/Cmd is held; tracked by the main window's key handlers.
	zoomModifier bool
}

// NewSliceCanvas creates a canvas bound to the application state.
func NewSliceCanvas(state *app.State, frames FrameSource) *SliceCanvas {
	sc := &SliceCanvas{state: state, frames: frames}
	sc.raster = fynecanvas.NewRaster(sc.draw)
	sc.raster.ScaleMode = fynecanvas.ImageScalePixels
	sc.raster.SetMinSize(fyne.NewSize(400, 300))
	sc.ExtendBaseWidget(sc)
	return sc
}

// SetZoomModifier records whether wheel events should zoom instead of
// changing slices.
func (sc *SliceCanvas) SetZoomModifier(held bool) {
	sc.zoomModifier = held
}

// LastOutput returns the most recent composited frame for export.
func (sc *SliceCanvas) LastOutput() *image.RGBA {
	return sc.lastOutput
}

// Refresh redraws the canvas.
func (sc *SliceCanvas) Refresh() {
	sc.raster.Refresh()
	sc.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (sc *SliceCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(sc.raster)
}

// Scrolled implements fyne.Scrollable: plain wheel scrubs slices, with the
// zoom modifier held it zooms instead.
func (sc *SliceCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if sc.zoomModifier {
		if ev.Scrolled.DY > 0 {
			sc.state.Viewport.ZoomBy(1.1)
		} else if ev.Scrolled.DY < 0 {
			sc.state.Viewport.ZoomBy(1 / 1.1)
		}
	} else {
		if ev.Scrolled.DY > 0 {
			sc.state.Viewport.StepSlice(1)
		} else if ev.Scrolled.DY < 0 {
			sc.state.Viewport.StepSlice(-1)
		}
	}
	sc.Refresh()
}

// Dragged implements fyne.Draggable: pans with the pan tool, draws a draft
// measurement with the ruler tool.
func (sc *SliceCanvas) Dragged(ev *fyne.DragEvent) {
	switch sc.state.Viewport.Tool() {
	case viewport.ToolRuler:
		p := sc.positionToPercent(ev.Position)
		if !sc.dragging {
			sc.dragging = true
			sc.state.Ruler.Begin(p)
		} else {
			sc.state.Ruler.Update(p)
		}
	default:
		sc.dragging = true
		sc.state.Viewport.Pan(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	}
	sc.Refresh()
}

// DragEnd commits a draft measurement or finishes a pan gesture.
func (sc *SliceCanvas) DragEnd() {
	if !sc.dragging {
		return
	}
	sc.dragging = false
	if sc.state.Viewport.Tool() == viewport.ToolRuler {
		sc.state.Ruler.Commit()
	}
	sc.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (sc *SliceCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved updates the hovered overlay entity.
func (sc *SliceCanvas) MouseMoved(ev *desktop.MouseEvent) {
	p := sc.positionToPercent(ev.Position)
	label := sc.hitTest(p)
	if label != sc.state.Overlays.Hovered() {
		sc.state.Overlays.SetHovered(label)
		sc.Refresh()
	}
}

// MouseOut clears the hover highlight.
func (sc *SliceCanvas) MouseOut() {
	if sc.state.Overlays.Hovered() != "" {
		sc.state.Overlays.SetHovered("")
		sc.Refresh()
	}
}

// hitTest returns the label of the topmost entity at a percent position.
// Boxes win over regions; hotspots are not hoverable.
func (sc *SliceCanvas) hitTest(p geometry.Point2D) string {
	visible := sc.state.Dataset().At(sc.state.Viewport.NormalizedSlice())
	if sc.state.Overlays.Visible(overlay.LayerAnnotation) {
		for _, b := range visible.Boxes {
			if b.Rect.Contains(p) {
				return b.Label
			}
		}
	}
	if sc.state.Overlays.Visible(overlay.LayerSegmentation) {
		for _, r := range visible.Regions {
			if r.Contains(p) {
				return r.Label
			}
		}
	}
	return ""
}

// frame returns the windowed base image for the current slice, cached until
// the slice or preset changes.
func (sc *SliceCanvas) frame() *image.RGBA {
	slice := sc.state.Viewport.Slice()
	preset := sc.state.Preset()
	if sc.cachedFrame != nil && sc.cachedSlice == slice && sc.cachedPreset == preset.Name {
		return sc.cachedFrame
	}

	base := sc.frames(slice)
	if base == nil {
		return nil
	}
	sc.cachedFrame = preset.Apply(base)
	sc.cachedSlice = slice
	sc.cachedPreset = preset.Name
	return sc.cachedFrame
}

// display holds the mapping from image space to output pixels for one draw.
type display struct {
	offsetX, offsetY float64
	scale            float64
	imgW, imgH       float64
}

func (d display) percentToOutput(p geometry.Point2D) (int, int) {
	return int(d.offsetX + p.X/100*d.imgW*d.scale),
		int(d.offsetY + p.Y/100*d.imgH*d.scale)
}

func (d display) outputToPercent(x, y float64) geometry.Point2D {
	if d.imgW == 0 || d.imgH == 0 || d.scale == 0 {
		return geometry.Point2D{}
	}
	return geometry.Point2D{
		X: (x - d.offsetX) / (d.imgW * d.scale) * 100,
		Y: (y - d.offsetY) / (d.imgH * d.scale) * 100,
	}
}

// layout computes the display mapping for the current widget size.
func (sc *SliceCanvas) layout(w, h int, frame *image.RGBA) display {
	imgW := float64(frame.Bounds().Dx())
	imgH := float64(frame.Bounds().Dy())

	fit := float64(w) / imgW
	if fitY := float64(h) / imgH; fitY < fit {
		fit = fitY
	}
	scale := fit * sc.state.Viewport.Zoom()

	panX, panY := sc.state.Viewport.PanOffset()
	return display{
		offsetX: (float64(w)-imgW*scale)/2 + panX,
		offsetY: (float64(h)-imgH*scale)/2 + panY,
		scale:   scale,
		imgW:    imgW,
		imgH:    imgH,
	}
}

func (sc *SliceCanvas) positionToPercent(pos fyne.Position) geometry.Point2D {
	frame := sc.frame()
	if frame == nil {
		return geometry.Point2D{}
	}
	size := sc.Size()
	d := sc.layout(int(size.Width), int(size.Height), frame)
	return d.outputToPercent(float64(pos.X), float64(pos.Y))
}

// draw is the raster drawing function.
func (sc *SliceCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}

	frame := sc.frame()
	if frame == nil || w == 0 || h == 0 {
		return output
	}

	d := sc.layout(w, h, frame)
	sc.blit(output, frame, d)

	t := sc.state.Viewport.NormalizedSlice()
	visible := sc.state.Dataset().At(t)
	hovered := sc.state.Overlays.Hovered()

	if sc.state.Overlays.Visible(overlay.LayerHeatmap) {
		sc.drawHeatmap(output, visible.Hotspots, d)
	}
	if sc.state.Overlays.Visible(overlay.LayerSegmentation) {
		sc.drawSegmentation(output, visible.Regions, d, hovered)
	}
	if sc.state.Overlays.Visible(overlay.LayerAnnotation) {
		sc.drawAnnotations(output, visible.Boxes, d, hovered)
	}

	sc.drawMeasurements(output, d)

	sc.lastOutput = output
	return output
}

// blit copies the frame into the output with nearest-neighbor scaling.
func (sc *SliceCanvas) blit(output *image.RGBA, frame *image.RGBA, d display) {
	b := frame.Bounds()
	for y := 0; y < output.Bounds().Dy(); y++ {
		srcY := int((float64(y) - d.offsetY) / d.scale)
		if srcY < b.Min.Y || srcY >= b.Max.Y {
			continue
		}
		for x := 0; x < output.Bounds().Dx(); x++ {
			srcX := int((float64(x) - d.offsetX) / d.scale)
			if srcX < b.Min.X || srcX >= b.Max.X {
				continue
			}
			output.SetRGBA(x, y, frame.RGBAAt(srcX, srcY))
		}
	}
}

func (sc *SliceCanvas) drawHeatmap(output *image.RGBA, hotspots []overlay.Hotspot, d display) {
	opacity := sc.state.Overlays.Opacity(overlay.LayerHeatmap)
	for _, hs := range hotspots {
		cx, cy := d.percentToOutput(hs.Center)
		radius := int(hs.Radius / 100 * d.imgW * d.scale)
		fillCircleRadial(output, cx, cy, radius, colorutil.HeatRamp(hs.Intensity), opacity*hs.Intensity)
	}
}

func (sc *SliceCanvas) drawSegmentation(output *image.RGBA, regions []overlay.Region, d display, hovered string) {
	opacity := sc.state.Overlays.Opacity(overlay.LayerSegmentation)
	mode := sc.state.Overlays.Mode()
	scale := labelScale(d.scale)

	for _, r := range regions {
		pts := toOutputPoints(r.Points, d.percentToOutput)
		col := colorutil.Cyan

		if mode == overlay.RenderFilled || mode == overlay.RenderBoth {
			fillPolygon(output, pts, col, opacity)
		}
		thickness := 1
		if r.Label == hovered {
			thickness = 3
		}
		if mode == overlay.RenderContour || mode == overlay.RenderBoth || r.Label == hovered {
			drawPolygonOutline(output, pts, col, thickness)
		}

		if r.Label == hovered {
			c := geometry.Centroid(r.Points)
			x, y := d.percentToOutput(c)
			drawLabel(output, fmt.Sprintf("%s %.0f mm2 (Dice %.2f)", r.Label, measure.Area(r.Points), r.DiceScore),
				x, y, colorutil.White, scale)
		}
	}
}

func (sc *SliceCanvas) drawAnnotations(output *image.RGBA, boxes []overlay.BoundingBox, d display, hovered string) {
	scale := labelScale(d.scale)
	for _, b := range boxes {
		x0, y0 := d.percentToOutput(geometry.Point2D{X: b.Rect.X, Y: b.Rect.Y})
		x1, y1 := d.percentToOutput(geometry.Point2D{X: b.Rect.X + b.Rect.Width, Y: b.Rect.Y + b.Rect.Height})

		col := colorutil.SeverityColor(b.Severity)
		thickness := 2
		if b.Label == hovered {
			thickness = 4
		}
		drawRectOutline(output, x0, y0, x1, y1, col, thickness)

		// Confidence readout is tinted by the confidence band, not severity,
		// so a high-severity low-confidence box reads as uncertain.
		text := fmt.Sprintf("%s %.0f%%", b.Label, b.Confidence*100)
		textCol := colorutil.ConfidenceColor(b.Confidence)
		if b.Label == hovered && b.Measurement != "" {
			text = fmt.Sprintf("%s: %s", b.Label, b.Measurement)
			textCol = col
		}
		drawLabel(output, text, x0, y0-6*scale-2, textCol, scale)
	}
}

func (sc *SliceCanvas) drawMeasurements(output *image.RGBA, d display) {
	scale := labelScale(d.scale)

	drawOne := func(m measure.Measurement, col color.RGBA) {
		x0, y0 := d.percentToOutput(m.Start)
		x1, y1 := d.percentToOutput(m.End)
		drawLine(output, x0, y0, x1, y1, col, 2)
		drawDot(output, x0, y0, col, 5)
		drawDot(output, x1, y1, col, 5)
		drawLabel(output, m.Label(), (x0+x1)/2, (y0+y1)/2-6*scale, colorutil.White, scale)
	}

	for _, m := range sc.state.Ruler.Measurements() {
		drawOne(m, colorutil.Yellow)
	}
	if draft, ok := sc.state.Ruler.Draft(); ok {
		drawOne(draft, colorutil.Orange)
	}
}

func labelScale(displayScale float64) int {
	s := int(displayScale * 2)
	if s < 1 {
		return 1
	}
	if s > 4 {
		return 4
	}
	return s
}
