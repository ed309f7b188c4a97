package window

import (
	"image"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// AutoPreset derives a window preset from the luminance distribution of the
// rendered slice: contrast stretches the 5th-95th percentile range to full
// scale and brightness recenters the median.
func AutoPreset(img *image.RGBA) Preset {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return SoftTissue
	}

	lum := make([]float64, 0, n)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.RGBAAt(x, y)
			// Rec. 601 luma weights.
			lum = append(lum, 0.299*float64(px.R)+0.587*float64(px.G)+0.114*float64(px.B))
		}
	}
	sort.Float64s(lum)

	lo := stat.Quantile(0.05, stat.Empirical, lum, nil)
	hi := stat.Quantile(0.95, stat.Empirical, lum, nil)
	median := stat.Quantile(0.5, stat.Empirical, lum, nil)

	spread := hi - lo
	if spread < 1 {
		spread = 1
	}
	contrast := 255.0 / spread
	if contrast > 3 {
		contrast = 3
	}
	if contrast < 1 {
		contrast = 1
	}

	return Preset{
		Name:       "Auto",
		Center:     int(median),
		Width:      int(spread),
		Brightness: int(128 - median),
		Contrast:   contrast,
	}
}
