package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medview/internal/study"
	"medview/pkg/geometry"
)

func TestSliceBandContains(t *testing.T) {
	b := SliceBand{Lo: 0.4, Hi: 0.7}
	assert.False(t, b.Contains(0.39))
	assert.True(t, b.Contains(0.4))
	assert.True(t, b.Contains(0.55))
	assert.True(t, b.Contains(0.7))
	assert.False(t, b.Contains(0.71))

	// The zero band contains everything.
	always := SliceBand{}
	assert.True(t, always.Contains(0))
	assert.True(t, always.Contains(0.5))
	assert.True(t, always.Contains(1))
}

func TestDatasetAtFiltersByBand(t *testing.T) {
	d := Dataset{
		Hotspots: []Hotspot{
			{Label: "everywhere"},
			{Label: "banded", Band: SliceBand{Lo: 0.4, Hi: 0.7}},
		},
		Boxes: []BoundingBox{
			{Label: "upper", Band: SliceBand{Lo: 0.2, Hi: 0.45}},
		},
	}

	at := d.At(0.5)
	require.Len(t, at.Hotspots, 2)
	assert.Empty(t, at.Boxes)

	at = d.At(0.3)
	require.Len(t, at.Hotspots, 1)
	assert.Equal(t, "everywhere", at.Hotspots[0].Label)
	require.Len(t, at.Boxes, 1)
	assert.Equal(t, "upper", at.Boxes[0].Label)
}

func TestByModality(t *testing.T) {
	assert.False(t, ByModality(study.ModalityCT).Empty())
	assert.False(t, ByModality(study.ModalityMRI).Empty())
	assert.False(t, ByModality(study.ModalityXRay).Empty())
	assert.False(t, ByModality(study.ModalityUltrasound).Empty())
	assert.True(t, ByModality(study.ModalityUnknown).Empty())
}

func TestCTNoduleAnnotationBand(t *testing.T) {
	d := ByModality(study.ModalityCT)

	// Slice 60 of 120 sits at t=0.5, inside the nodule band.
	at := d.At(0.5)
	found := false
	for _, b := range at.Boxes {
		if b.Band == (SliceBand{Lo: 0.4, Hi: 0.7}) {
			found = true
		}
	}
	assert.True(t, found, "nodule annotation should be visible at t=0.5")

	// Outside the band the box disappears.
	at = d.At(0.9)
	for _, b := range at.Boxes {
		assert.NotEqual(t, SliceBand{Lo: 0.4, Hi: 0.7}, b.Band)
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{Points: []geometry.Point2D{
		{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50},
	}}
	assert.True(t, r.Contains(geometry.Point2D{X: 30, Y: 30}))
	assert.False(t, r.Contains(geometry.Point2D{X: 60, Y: 30}))
}

func TestSettingsDefaults(t *testing.T) {
	s := NewSettings()

	assert.True(t, s.Visible(LayerHeatmap))
	assert.True(t, s.Visible(LayerSegmentation))
	assert.True(t, s.Visible(LayerAnnotation))

	assert.InDelta(t, 0.45, s.Opacity(LayerHeatmap), 1e-9)
	assert.InDelta(t, 0.35, s.Opacity(LayerSegmentation), 1e-9)
	assert.InDelta(t, 1.0, s.Opacity(LayerAnnotation), 1e-9)

	assert.Equal(t, RenderFilled, s.Mode())
}

func TestSettingsToggle(t *testing.T) {
	s := NewSettings()

	assert.False(t, s.Toggle(LayerHeatmap))
	assert.False(t, s.Visible(LayerHeatmap))

	assert.True(t, s.Toggle(LayerHeatmap))
	assert.True(t, s.Visible(LayerHeatmap))
}

func TestSettingsOpacityClamped(t *testing.T) {
	s := NewSettings()

	s.SetOpacity(LayerHeatmap, 1.5)
	assert.Equal(t, 1.0, s.Opacity(LayerHeatmap))

	s.SetOpacity(LayerHeatmap, -0.2)
	assert.Equal(t, 0.0, s.Opacity(LayerHeatmap))
}

func TestSettingsHovered(t *testing.T) {
	s := NewSettings()
	assert.Equal(t, "", s.Hovered())

	s.SetHovered("Pulmonary nodule")
	assert.Equal(t, "Pulmonary nodule", s.Hovered())

	s.SetHovered("")
	assert.Equal(t, "", s.Hovered())
}
