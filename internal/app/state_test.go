package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medview/internal/study"
	"medview/internal/window"
	"medview/pkg/geometry"
)

func newTestState() *State {
	return NewState(study.FixtureRepository(), 1)
}

func TestLoadStudyResetsViewer(t *testing.T) {
	s := newTestState()
	defer s.Close()

	require.NoError(t, s.LoadStudy("STU-2024-0001"))

	// Disturb the viewer, then switch studies.
	s.Viewport.SetSlice(80)
	s.Viewport.SetZoom(3)
	s.Viewport.Pan(40, 40)
	s.Ruler.Begin(geometry.Point2D{X: 0, Y: 0})
	s.Ruler.Update(geometry.Point2D{X: 50, Y: 0})
	s.Ruler.Commit()

	require.NoError(t, s.LoadStudy("STU-2024-0002"))

	assert.Equal(t, 1, s.Viewport.Slice())
	assert.Equal(t, 96, s.Viewport.TotalSlices())
	assert.Equal(t, 1.0, s.Viewport.Zoom())
	assert.Empty(t, s.Ruler.Measurements())
	assert.Equal(t, study.ModalityMRI, s.Current().Modality)
	assert.NotNil(t, s.Report())
	assert.False(t, s.Dataset().Empty())
}

func TestLoadStudyWithoutReport(t *testing.T) {
	s := newTestState()
	defer s.Close()

	require.NoError(t, s.LoadStudy("STU-2024-0004"))
	assert.Nil(t, s.Report())
	assert.Equal(t, 48, s.Viewport.TotalSlices())
}

func TestLoadStudyUnknownID(t *testing.T) {
	s := newTestState()
	defer s.Close()

	assert.Error(t, s.LoadStudy("STU-9999-0000"))
	assert.Nil(t, s.Current())
}

func TestEventsRelay(t *testing.T) {
	s := newTestState()
	defer s.Close()

	var sliceEvents []interface{}
	s.On(EventSliceChanged, func(data interface{}) {
		sliceEvents = append(sliceEvents, data)
	})

	loaded := 0
	s.On(EventStudyLoaded, func(interface{}) { loaded++ })

	require.NoError(t, s.LoadStudy("STU-2024-0001"))
	assert.Equal(t, 1, loaded)

	// LoadStudy positions the slice silently; only user navigation emits.
	assert.Empty(t, sliceEvents)

	s.Viewport.SetSlice(10)
	require.Len(t, sliceEvents, 1)
	assert.Equal(t, 10, sliceEvents[0])
}

func TestMeasurementEvents(t *testing.T) {
	s := newTestState()
	defer s.Close()

	changes := 0
	s.On(EventMeasurementsChanged, func(interface{}) { changes++ })

	s.Ruler.Begin(geometry.Point2D{X: 10, Y: 10})
	s.Ruler.Update(geometry.Point2D{X: 40, Y: 10})
	_, ok := s.Ruler.Commit()
	require.True(t, ok)
	assert.Equal(t, 1, changes)

	s.Ruler.RemoveLast()
	assert.Equal(t, 2, changes)
}

func TestSetPreset(t *testing.T) {
	s := newTestState()
	defer s.Close()

	assert.Equal(t, window.SoftTissue, s.Preset())

	var got interface{}
	s.On(EventWindowPresetChanged, func(data interface{}) { got = data })

	s.SetPreset(window.Lung)
	assert.Equal(t, window.Lung, s.Preset())
	assert.Equal(t, window.Lung, got)
}
