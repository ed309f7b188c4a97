// Package window provides display window/level presets. Presets are applied
// as a brightness/contrast lookup table over the rendered slice, simulating
// radiological windowing without real Hounsfield-unit math.
package window

import (
	"image"
	"image/color"
)

// Preset is a named window/level display mapping.
type Preset struct {
	Name       string
	Center     int     // window center, display units
	Width      int     // window width, display units
	Brightness int     // additive offset, -255..255
	Contrast   float64 // multiplicative gain around mid-gray
}

// The fixed preset list. Exactly one preset is active at a time.
var (
	Lung        = Preset{Name: "Lung", Center: -600, Width: 1500, Brightness: 10, Contrast: 1.35}
	Mediastinum = Preset{Name: "Mediastinum", Center: 50, Width: 350, Brightness: 0, Contrast: 1.1}
	Bone        = Preset{Name: "Bone", Center: 400, Width: 1800, Brightness: 25, Contrast: 1.5}
	Brain       = Preset{Name: "Brain", Center: 40, Width: 80, Brightness: 5, Contrast: 1.2}
	SoftTissue  = Preset{Name: "Soft Tissue", Center: 50, Width: 400, Brightness: 0, Contrast: 1.0}
)

// Presets lists all selectable presets in display order.
func Presets() []Preset {
	return []Preset{Lung, Mediastinum, Bone, Brain, SoftTissue}
}

// ByName looks up a preset by name; the second result is false when absent.
func ByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// lut builds the 256-entry brightness/contrast mapping.
func (p Preset) lut() [256]uint8 {
	var table [256]uint8
	for i := 0; i < 256; i++ {
		v := (float64(i)-128)*p.Contrast + 128 + float64(p.Brightness)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		table[i] = uint8(v)
	}
	return table
}

// Apply returns a copy of img with the preset's mapping applied. The input
// image is not modified.
func (p Preset) Apply(img *image.RGBA) *image.RGBA {
	table := p.lut()
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.RGBAAt(x, y)
			out.SetRGBA(x, y, color.RGBA{
				R: table[px.R],
				G: table[px.G],
				B: table[px.B],
				A: px.A,
			})
		}
	}
	return out
}
