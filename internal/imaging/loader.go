// Package imaging loads real slice images from disk. When a study provides
// stored image files the procedural renderer is bypassed and these are
// displayed directly.
package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/tiff"
)

// Load decodes an image file (PNG, JPEG, or TIFF) into RGBA.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// LoadSeries loads every image path of a series, skipping files that fail to
// decode. The second result reports how many files were skipped.
func LoadSeries(paths []string) ([]*image.RGBA, int) {
	var out []*image.RGBA
	skipped := 0
	for _, p := range paths {
		img, err := Load(p)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, img)
	}
	return out, skipped
}
