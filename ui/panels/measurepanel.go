package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"medview/internal/app"
)

// MeasurePanel lists committed measurements with per-item and bulk deletion.
type MeasurePanel struct {
	state     *app.State
	list      *fyne.Container
	container *fyne.Container
	onChange  func()
}

// NewMeasurePanel creates the measurement list panel.
func NewMeasurePanel(state *app.State, onChange func()) *MeasurePanel {
	mp := &MeasurePanel{
		state:    state,
		list:     container.NewVBox(),
		onChange: onChange,
	}

	clearBtn := widget.NewButtonWithIcon("Clear all", theme.DeleteIcon(), func() {
		mp.state.Ruler.Clear()
	})

	mp.container = container.NewVBox(
		widget.NewLabelWithStyle("Measurements", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mp.list,
		clearBtn,
	)

	state.On(app.EventMeasurementsChanged, func(interface{}) {
		mp.Sync()
	})
	mp.Sync()

	return mp
}

// Sync rebuilds the list from the ruler.
func (mp *MeasurePanel) Sync() {
	mp.list.Objects = nil
	for i, m := range mp.state.Ruler.Measurements() {
		id := m.ID
		row := container.NewBorder(nil, nil, nil,
			widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
				mp.state.Ruler.Remove(id)
			}),
			widget.NewLabel(fmt.Sprintf("#%d  %s", i+1, m.Label())),
		)
		mp.list.Add(row)
	}
	mp.list.Refresh()
	if mp.onChange != nil {
		mp.onChange()
	}
}

// Container returns the panel container.
func (mp *MeasurePanel) Container() fyne.CanvasObject {
	return mp.container
}
