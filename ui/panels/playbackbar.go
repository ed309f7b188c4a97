package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"medview/internal/app"
)

// PlaybackBar holds the slice slider, cine play control, and speed selector.
type PlaybackBar struct {
	state *app.State

	slider     *widget.Slider
	sliceLabel *widget.Label
	playBtn    *widget.Button
	container  *fyne.Container
}

// NewPlaybackBar creates the playback/navigation bar.
func NewPlaybackBar(state *app.State, onChange func()) *PlaybackBar {
	pb := &PlaybackBar{
		state:      state,
		sliceLabel: widget.NewLabel("1 / 1"),
	}

	pb.slider = widget.NewSlider(1, float64(state.Viewport.TotalSlices()))
	pb.slider.Step = 1
	pb.slider.OnChanged = func(v float64) {
		state.Viewport.SetSlice(int(v))
		pb.updateLabel()
		if onChange != nil {
			onChange()
		}
	}

	pb.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		state.Player.Toggle()
	})

	speed := widget.NewSelect([]string{"0.5x", "1x", "2x", "4x"}, func(sel string) {
		switch sel {
		case "0.5x":
			state.Player.SetSpeed(0.5)
		case "2x":
			state.Player.SetSpeed(2)
		case "4x":
			state.Player.SetSpeed(4)
		default:
			state.Player.SetSpeed(1)
		}
	})
	speed.Selected = "1x"

	state.On(app.EventSliceChanged, func(data interface{}) {
		if slice, ok := data.(int); ok {
			// Synchronize without re-triggering OnChanged feedback.
			pb.slider.Value = float64(slice)
			pb.slider.Refresh()
			pb.updateLabel()
			if onChange != nil {
				onChange()
			}
		}
	})
	state.On(app.EventPlaybackChanged, func(data interface{}) {
		if playing, ok := data.(bool); ok {
			if playing {
				pb.playBtn.SetIcon(theme.MediaPauseIcon())
			} else {
				pb.playBtn.SetIcon(theme.MediaPlayIcon())
			}
		}
	})
	state.On(app.EventStudyLoaded, func(interface{}) {
		pb.slider.Max = float64(state.Viewport.TotalSlices())
		pb.slider.Value = float64(state.Viewport.Slice())
		pb.slider.Refresh()
		pb.updateLabel()
	})

	pb.updateLabel()

	pb.container = container.NewBorder(nil, nil,
		container.NewHBox(pb.playBtn, speed), pb.sliceLabel, pb.slider)
	return pb
}

func (pb *PlaybackBar) updateLabel() {
	pb.sliceLabel.SetText(fmt.Sprintf("%d / %d",
		pb.state.Viewport.Slice(), pb.state.Viewport.TotalSlices()))
}

// Container returns the bar container.
func (pb *PlaybackBar) Container() fyne.CanvasObject {
	return pb.container
}
