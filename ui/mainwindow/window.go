// Package mainwindow assembles the viewer window: canvas, panels, toolbar,
// and keyboard shortcuts.
package mainwindow

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"medview/internal/anatomy"
	"medview/internal/api"
	"medview/internal/app"
	"medview/internal/assistant"
	"medview/internal/config"
	"medview/internal/export"
	"medview/internal/imaging"
	"medview/internal/overlay"
	"medview/internal/study"
	"medview/internal/viewport"
	"medview/internal/window"
	"medview/ui/panels"
	"medview/ui/viewer"
)

// MainWindow is the top-level viewer window.
type MainWindow struct {
	win   fyne.Window
	state *app.State
	cfg   *config.Config
	log   *zap.Logger

	canvas   *viewer.SliceCanvas
	exporter *export.Exporter

	overlayPanel *panels.OverlayPanel
	measurePanel *panels.MeasurePanel
	chatPanel    *panels.ChatPanel
	uploadPanel  *panels.UploadPanel
	playback     *panels.PlaybackBar

	studySelect  *widget.Select
	presetSelect *widget.Select
	rulerBtn     *widget.Button
	statusLabel  *widget.Label

	// Decoded frames for studies that carry real image files. Empty for
	// fixture studies, which render procedurally.
	seriesFrames []*image.RGBA
}

// New builds the main window and wires it to the application state.
func New(a fyne.App, state *app.State, responder *assistant.Responder,
	client *api.Client, cfg *config.Config, log *zap.Logger) *MainWindow {

	mw := &MainWindow{
		win:      a.NewWindow("MedView"),
		state:    state,
		cfg:      cfg,
		log:      log,
		exporter: export.New(cfg.Export.Dir),
	}

	mw.canvas = viewer.NewSliceCanvas(state, mw.frameFor)
	mw.statusLabel = widget.NewLabel("")

	refresh := func() { mw.canvas.Refresh() }

	mw.overlayPanel = panels.NewOverlayPanel(state, refresh)
	mw.measurePanel = panels.NewMeasurePanel(state, refresh)
	mw.chatPanel = panels.NewChatPanel(state, responder)
	mw.uploadPanel = panels.NewUploadPanel(client)
	mw.uploadPanel.SetWindow(mw.win)
	mw.playback = panels.NewPlaybackBar(state, refresh)

	client.OnUnauthorized(func() {
		dialog.ShowInformation("Session expired",
			"Your backend session is no longer valid. Please sign in again.", mw.win)
	})

	mw.buildStudySelect()
	mw.buildPresetSelect()
	toolbar := mw.buildToolbar()

	state.On(app.EventOverlayChanged, func(interface{}) { mw.canvas.Refresh() })
	state.On(app.EventMeasurementsChanged, func(interface{}) { mw.canvas.Refresh() })
	state.On(app.EventWindowPresetChanged, func(interface{}) { mw.canvas.Refresh() })
	state.On(app.EventSliceChanged, func(interface{}) { mw.updateStatus() })
	state.On(app.EventToolChanged, func(interface{}) { mw.syncToolButtons() })
	state.On(app.EventStudyLoaded, func(data interface{}) {
		if st, ok := data.(*study.Study); ok {
			mw.loadSeriesFrames(st)
		}
		mw.overlayPanel.Sync()
		mw.updateStatus()
		mw.canvas.Refresh()
	})

	left := container.NewVBox(
		widget.NewLabelWithStyle("Study", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.studySelect,
		widget.NewSeparator(),
		mw.overlayPanel.Container(),
		widget.NewSeparator(),
		mw.measurePanel.Container(),
		widget.NewSeparator(),
		mw.uploadPanel.Container(),
	)

	center := container.NewBorder(nil, mw.playback.Container(), nil, nil, mw.canvas)

	content := container.NewBorder(
		toolbar,
		mw.statusLabel,
		container.NewVScroll(left),
		mw.chatPanel.Container(),
		center,
	)

	mw.win.SetContent(content)
	mw.win.Resize(fyne.NewSize(1280, 800))
	mw.setupShortcuts()
	mw.win.SetCloseIntercept(func() {
		state.Close()
		mw.win.Close()
	})

	return mw
}

// Show displays the window.
func (mw *MainWindow) Show() {
	mw.win.Show()
}

// Window exposes the underlying fyne window.
func (mw *MainWindow) Window() fyne.Window {
	return mw.win
}

func (mw *MainWindow) buildStudySelect() {
	studies := mw.state.Repository().Studies()
	labels := make([]string, len(studies))
	byLabel := make(map[string]string, len(studies))
	for i, s := range studies {
		label := fmt.Sprintf("%s  %s %s", s.CaseID, s.BodyPart, s.Modality)
		labels[i] = label
		byLabel[label] = s.ID
	}

	mw.studySelect = widget.NewSelect(labels, func(sel string) {
		id, ok := byLabel[sel]
		if !ok {
			return
		}
		if err := mw.state.LoadStudy(id); err != nil {
			mw.log.Warn("failed to load study", zap.String("id", id), zap.Error(err))
			dialog.ShowError(err, mw.win)
		}
	})
	if len(labels) > 0 {
		mw.studySelect.SetSelected(labels[0])
	}
}

func (mw *MainWindow) buildPresetSelect() {
	names := make([]string, 0)
	for _, p := range window.Presets() {
		names = append(names, p.Name)
	}
	names = append(names, "Auto")

	mw.presetSelect = widget.NewSelect(names, func(sel string) {
		if sel == "Auto" {
			if frame := mw.frameFor(mw.state.Viewport.Slice()); frame != nil {
				mw.state.SetPreset(window.AutoPreset(frame))
			}
			return
		}
		if p, ok := window.ByName(sel); ok {
			mw.state.SetPreset(p)
		}
	})
	mw.presetSelect.Selected = mw.state.Preset().Name
}

func (mw *MainWindow) buildToolbar() fyne.CanvasObject {
	zoomIn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		mw.state.Viewport.ZoomIn()
		mw.canvas.Refresh()
		mw.updateStatus()
	})
	zoomOut := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
		mw.state.Viewport.ZoomOut()
		mw.canvas.Refresh()
		mw.updateStatus()
	})
	reset := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		mw.state.Viewport.Reset()
		mw.canvas.Refresh()
		mw.updateStatus()
	})
	mw.rulerBtn = widget.NewButton("Ruler (m)", func() {
		mw.toggleRuler()
	})
	exportBtn := widget.NewButtonWithIcon("Snapshot", theme.DocumentSaveIcon(), func() {
		mw.exportSnapshot()
	})
	fullscreenBtn := widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), func() {
		mw.toggleFullscreen()
	})

	return container.NewHBox(
		zoomOut, zoomIn, reset,
		widget.NewSeparator(),
		mw.rulerBtn,
		widget.NewSeparator(),
		widget.NewLabel("Window"),
		mw.presetSelect,
		widget.NewSeparator(),
		exportBtn,
		fullscreenBtn,
	)
}

func (mw *MainWindow) toggleRuler() {
	mw.state.Viewport.ToggleRuler()
	mw.state.Emit(app.EventToolChanged, mw.state.Viewport.Tool())
	mw.canvas.Refresh()
}

func (mw *MainWindow) syncToolButtons() {
	if mw.state.Viewport.Tool() == viewport.ToolRuler {
		mw.rulerBtn.Importance = widget.HighImportance
	} else {
		mw.rulerBtn.Importance = widget.MediumImportance
	}
	mw.rulerBtn.Refresh()
}

func (mw *MainWindow) toggleFullscreen() {
	full := !mw.state.Viewport.Fullscreen()
	mw.state.Viewport.SetFullscreen(full)
	mw.win.SetFullScreen(full)
}

func (mw *MainWindow) exportSnapshot() {
	st := mw.state.Current()
	if st == nil {
		return
	}
	path, err := mw.exporter.Save(mw.canvas.LastOutput(), st.Modality, mw.state.Viewport.Slice())
	if err != nil {
		mw.log.Warn("snapshot export failed", zap.Error(err))
		dialog.ShowError(err, mw.win)
		return
	}
	mw.log.Info("snapshot saved", zap.String("path", path))
	mw.statusLabel.SetText("Saved " + path)
}

// loadSeriesFrames decodes stored image files for the study, if it has any.
// Studies without files keep the procedural renderer.
func (mw *MainWindow) loadSeriesFrames(st *study.Study) {
	mw.seriesFrames = nil
	var paths []string
	for _, series := range st.Series {
		for _, img := range series.Images {
			if img.FilePath != "" {
				paths = append(paths, img.FilePath)
			}
		}
	}
	if len(paths) == 0 {
		return
	}
	frames, skipped := imaging.LoadSeries(paths)
	if skipped > 0 {
		mw.log.Warn("some series images could not be decoded",
			zap.String("study", st.ID), zap.Int("skipped", skipped))
	}
	if len(frames) == 0 {
		return
	}
	mw.seriesFrames = frames
}

// frameFor supplies the base image for a slice: decoded series frames when
// available, otherwise a procedurally rendered slice.
func (mw *MainWindow) frameFor(slice int) *image.RGBA {
	st := mw.state.Current()
	if st == nil {
		return nil
	}
	if len(mw.seriesFrames) > 0 {
		idx := slice - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(mw.seriesFrames) {
			idx = len(mw.seriesFrames) - 1
		}
		return mw.seriesFrames[idx]
	}
	return anatomy.Render(st.Modality, slice, mw.state.Viewport.TotalSlices(), mw.cfg.Viewer.SliceSize)
}

func (mw *MainWindow) updateStatus() {
	st := mw.state.Current()
	if st == nil {
		mw.statusLabel.SetText("")
		return
	}
	mw.statusLabel.SetText(fmt.Sprintf("%s  |  slice %d/%d  |  zoom %.0f%%  |  %s",
		st.CaseID, mw.state.Viewport.Slice(), mw.state.Viewport.TotalSlices(),
		mw.state.Viewport.Zoom()*100, mw.state.Preset().Name))
}

// setupShortcuts installs the keyboard map. Letters and +/- arrive as runes;
// navigation and editing keys arrive as key events. The modifier state for
// wheel zoom is tracked through raw key down/up events.
func (mw *MainWindow) setupShortcuts() {
	c := mw.win.Canvas()

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyUp:
			mw.state.Viewport.StepSlice(1)
		case fyne.KeyDown:
			mw.state.Viewport.StepSlice(-1)
		case fyne.KeyRight:
			mw.state.Viewport.StepSlice(5)
		case fyne.KeyLeft:
			mw.state.Viewport.StepSlice(-5)
		case fyne.KeySpace:
			mw.state.Player.Toggle()
		case fyne.KeyEscape:
			if mw.state.Viewport.Fullscreen() {
				mw.toggleFullscreen()
			} else {
				mw.state.Ruler.Cancel()
			}
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.state.Ruler.RemoveLast()
		default:
			return
		}
		mw.canvas.Refresh()
		mw.updateStatus()
	})

	c.SetOnTypedRune(func(r rune) {
		switch r {
		case '+', '=':
			mw.state.Viewport.ZoomIn()
		case '-':
			mw.state.Viewport.ZoomOut()
		case 'r', 'R':
			mw.state.Viewport.Reset()
		case 'f', 'F':
			mw.toggleFullscreen()
		case 'h', 'H':
			mw.state.Overlays.Toggle(overlay.LayerHeatmap)
			mw.overlayPanel.Sync()
		case 's', 'S':
			mw.state.Overlays.Toggle(overlay.LayerSegmentation)
			mw.overlayPanel.Sync()
		case 'a', 'A':
			mw.state.Overlays.Toggle(overlay.LayerAnnotation)
			mw.overlayPanel.Sync()
		case 'm', 'M':
			mw.toggleRuler()
		default:
			return
		}
		mw.canvas.Refresh()
		mw.updateStatus()
	})

	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if isZoomModifier(ev.Name) {
				mw.canvas.SetZoomModifier(true)
			}
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if isZoomModifier(ev.Name) {
				mw.canvas.SetZoomModifier(false)
			}
		})
	}
}

func isZoomModifier(name fyne.KeyName) bool {
	switch name {
	case desktop.KeyControlLeft, desktop.KeyControlRight,
		desktop.KeySuperLeft, desktop.KeySuperRight:
		return true
	}
	return false
}
