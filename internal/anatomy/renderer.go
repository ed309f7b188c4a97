// Package anatomy procedurally renders pseudo-anatomical slice images.
// The output is deterministic in (slice, total) and exists only to make the
// mock viewer feel alive across a stack; it has no diagnostic meaning.
package anatomy

import (
	"image"
	"image/color"
	"math"

	"medview/internal/study"
)

const (
	// noduleBandLo/Hi bound the normalized slice positions where the mock
	// nodule is drawn.
	noduleBandLo = 0.4
	noduleBandHi = 0.7

	// noiseSeed feeds the pseudo-random per-slice jitter term.
	noiseSeed = 12.9898
)

// SliceParams holds the derived layout parameters for one slice.
type SliceParams struct {
	// Normalized position of the slice within the stack, in [0,1].
	T float64

	LungScale float64 // relative lung ellipse size

	NoduleVisible bool
	NoduleSize    float64 // radius as a fraction of the frame
	NoduleOpacity float64

	HeartVisible bool
	HeartSize    float64

	SpineWidth float64 // fraction of the frame width

	Noise float64 // low-amplitude jitter in [-0.05, 0.05]
}

// ParamsFor derives the slice layout deterministically from the slice index.
func ParamsFor(slice, total int) SliceParams {
	if total < 1 {
		total = 1
	}
	if slice < 1 {
		slice = 1
	}
	if slice > total {
		slice = total
	}

	t := float64(slice) / float64(total)

	p := SliceParams{
		T:         t,
		LungScale: 0.55 + 0.35*math.Sin(math.Pi*t),
		Noise:     0.05 * math.Sin(float64(slice)*noiseSeed),
	}

	p.NoduleVisible = t >= noduleBandLo && t <= noduleBandHi
	if p.NoduleVisible {
		// Largest in the middle of the band, fading toward its edges.
		bandT := (t - noduleBandLo) / (noduleBandHi - noduleBandLo)
		p.NoduleSize = 0.012 + 0.01*math.Sin(math.Pi*bandT)
		p.NoduleOpacity = 0.5 + 0.5*math.Sin(math.Pi*bandT)
	}

	p.HeartVisible = t >= 0.35 && t <= 0.85
	if p.HeartVisible {
		p.HeartSize = 0.1 + 0.06*math.Cos(2*math.Pi*(t-0.6))
	}

	p.SpineWidth = 0.055 + 0.01*math.Cos(math.Pi*t) + 0.2*p.Noise*0.01

	return p
}

// Render produces a square grayscale-toned slice image for the given
// modality. size is the pixel edge length of the output.
func Render(modality study.Modality, slice, total, size int) *image.RGBA {
	if size < 16 {
		size = 16
	}
	p := ParamsFor(slice, total)
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	base, tissue, air := palette(modality)
	fill(img, base)

	s := float64(size)
	cx, cy := s/2, s/2

	// Body outline
	drawEllipse(img, cx, cy+s*0.04, s*0.42, s*0.33, tissue, 1.0)

	// Lungs: two dark ellipses whose size follows the slice position.
	lungRX := s * 0.16 * p.LungScale
	lungRY := s * 0.24 * p.LungScale
	jitter := p.Noise * s * 0.2
	drawEllipse(img, cx-s*0.18+jitter, cy, lungRX, lungRY, air, 1.0)
	drawEllipse(img, cx+s*0.18-jitter, cy, lungRX, lungRY, air, 1.0)

	// Heart between the lungs.
	if p.HeartVisible {
		heartR := s * p.HeartSize
		drawEllipse(img, cx-s*0.03, cy+s*0.05, heartR, heartR*0.9, brighten(tissue, 18), 1.0)
	}

	// Spine: a bright block at the posterior midline.
	spineW := s * p.SpineWidth
	drawEllipse(img, cx, cy+s*0.27, spineW, spineW*0.8, brighten(tissue, 70), 1.0)

	// Nodule inside the right lung, only within its visibility band.
	if p.NoduleVisible {
		drawEllipse(img, cx+s*0.2, cy-s*0.05, s*p.NoduleSize, s*p.NoduleSize,
			brighten(tissue, 45), p.NoduleOpacity)
	}

	if modality == study.ModalityUltrasound {
		speckle(img, slice)
	}

	return img
}

func palette(m study.Modality) (base, tissue, air color.RGBA) {
	switch m {
	case study.ModalityMRI:
		return color.RGBA{12, 12, 16, 255}, color.RGBA{150, 150, 158, 255}, color.RGBA{30, 30, 36, 255}
	case study.ModalityUltrasound:
		return color.RGBA{8, 10, 10, 255}, color.RGBA{120, 128, 124, 255}, color.RGBA{40, 44, 42, 255}
	case study.ModalityXRay:
		return color.RGBA{18, 18, 18, 255}, color.RGBA{175, 175, 175, 255}, color.RGBA{55, 55, 55, 255}
	default: // CT
		return color.RGBA{10, 10, 10, 255}, color.RGBA{135, 135, 140, 255}, color.RGBA{25, 25, 28, 255}
	}
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawEllipse fills an axis-aligned ellipse, alpha-blending with the
// existing pixels when opacity < 1.
func drawEllipse(img *image.RGBA, cx, cy, rx, ry float64, c color.RGBA, opacity float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	b := img.Bounds()
	x0 := int(math.Max(float64(b.Min.X), cx-rx))
	x1 := int(math.Min(float64(b.Max.X-1), cx+rx))
	y0 := int(math.Max(float64(b.Min.Y), cy-ry))
	y1 := int(math.Min(float64(b.Max.Y-1), cy+ry))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			if opacity >= 0.999 {
				img.SetRGBA(x, y, c)
				continue
			}
			dst := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: blend(dst.R, c.R, opacity),
				G: blend(dst.G, c.G, opacity),
				B: blend(dst.B, c.B, opacity),
				A: 255,
			})
		}
	}
}

// speckle adds the grainy texture characteristic of ultrasound imagery,
// using the same deterministic hash as the noise term.
func speckle(img *image.RGBA, slice int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x += 2 {
			h := math.Sin(float64(x*31+y*17+slice)*noiseSeed) * 43758.5453
			frac := h - math.Floor(h)
			if frac > 0.82 {
				px := img.RGBAAt(x, y)
				img.SetRGBA(x, y, color.RGBA{
					R: blend(px.R, 255, 0.18),
					G: blend(px.G, 255, 0.18),
					B: blend(px.B, 255, 0.18),
					A: 255,
				})
			}
		}
	}
}

func blend(dst, src uint8, opacity float64) uint8 {
	return uint8(float64(dst)*(1-opacity) + float64(src)*opacity)
}

func brighten(c color.RGBA, by uint8) color.RGBA {
	add := func(v, d uint8) uint8 {
		if int(v)+int(d) > 255 {
			return 255
		}
		return v + d
	}
	return color.RGBA{R: add(c.R, by), G: add(c.G, by), B: add(c.B, by), A: c.A}
}
