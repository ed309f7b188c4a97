package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{200, 100, 50, 255})

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadConvertsToRGBA(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "slice.png")

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{200, 100, 50, 255}, img.RGBAAt(1, 1))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)
}

func TestLoadNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadSeriesSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	good1 := writeTestPNG(t, dir, "a.png")
	bad := filepath.Join(dir, "b.png")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))
	good2 := writeTestPNG(t, dir, "c.png")

	frames, skipped := LoadSeries([]string{good1, bad, good2})
	assert.Len(t, frames, 2)
	assert.Equal(t, 1, skipped)
}
