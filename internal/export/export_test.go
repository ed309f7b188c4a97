package export

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medview/internal/study"
)

func fixedClock() time.Time {
	return time.Date(2024, 11, 3, 9, 15, 42, 0, time.UTC)
}

func TestFilename(t *testing.T) {
	e := New(t.TempDir())
	e.now = fixedClock

	assert.Equal(t, "CT_slice60_20241103-091542.png",
		e.Filename(study.ModalityCT, 60))
	assert.Equal(t, "Ultrasound_slice3_20241103-091542.png",
		e.Filename(study.ModalityUltrasound, 3))
}

func TestSaveWritesDecodablePNG(t *testing.T) {
	dir := t.TempDir()
	e := New(dir)
	e.now = fixedClock

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	path, err := e.Save(img, study.ModalityCT, 7)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "CT_slice7_20241103-091542.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, decoded.Bounds().Dx())
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "snapshots")
	e := New(dir)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	path, err := e.Save(img, study.ModalityMRI, 1)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveNilImage(t *testing.T) {
	e := New(t.TempDir())
	_, err := e.Save(nil, study.ModalityCT, 1)
	assert.Error(t, err)
}
