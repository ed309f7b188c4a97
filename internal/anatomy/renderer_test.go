package anatomy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medview/internal/study"
)

func TestParamsForNoduleBand(t *testing.T) {
	total := 120

	// The nodule spans normalized positions 0.4 through 0.7.
	assert.False(t, ParamsFor(47, total).NoduleVisible) // t ~0.392
	assert.True(t, ParamsFor(48, total).NoduleVisible)  // t = 0.4 exactly
	assert.True(t, ParamsFor(60, total).NoduleVisible)  // middle slice
	assert.True(t, ParamsFor(84, total).NoduleVisible)  // t = 0.7 exactly
	assert.False(t, ParamsFor(85, total).NoduleVisible)

	p := ParamsFor(60, total)
	assert.Greater(t, p.NoduleSize, 0.0)
	assert.Greater(t, p.NoduleOpacity, 0.0)
}

func TestParamsForClampsInputs(t *testing.T) {
	assert.Equal(t, ParamsFor(1, 120), ParamsFor(-5, 120))
	assert.Equal(t, ParamsFor(120, 120), ParamsFor(500, 120))

	// A degenerate stack behaves as a single slice.
	p := ParamsFor(1, 0)
	assert.Equal(t, 1.0, p.T)
}

func TestParamsForDeterministic(t *testing.T) {
	for _, slice := range []int{1, 30, 60, 90, 120} {
		assert.Equal(t, ParamsFor(slice, 120), ParamsFor(slice, 120))
	}
}

func TestParamsForNoiseBounds(t *testing.T) {
	for slice := 1; slice <= 120; slice++ {
		n := ParamsFor(slice, 120).Noise
		assert.GreaterOrEqual(t, n, -0.05)
		assert.LessOrEqual(t, n, 0.05)
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := Render(study.ModalityCT, 60, 120, 128)
	b := Render(study.ModalityCT, 60, 120, 128)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestRenderDiffersAcrossSlices(t *testing.T) {
	a := Render(study.ModalityCT, 10, 120, 128)
	b := Render(study.ModalityCT, 60, 120, 128)
	assert.NotEqual(t, a.Pix, b.Pix)
}

func TestRenderSizeFloor(t *testing.T) {
	img := Render(study.ModalityCT, 1, 120, 4)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestRenderModalityPalettes(t *testing.T) {
	ct := Render(study.ModalityCT, 60, 120, 64)
	mri := Render(study.ModalityMRI, 60, 120, 64)
	assert.NotEqual(t, ct.Pix, mri.Pix)

	// Every pixel is fully opaque.
	us := Render(study.ModalityUltrasound, 30, 48, 64)
	for i := 3; i < len(us.Pix); i += 4 {
		assert.Equal(t, uint8(255), us.Pix[i])
	}
}
