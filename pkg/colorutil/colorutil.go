// Package colorutil provides shared color utilities for the viewer overlays.
package colorutil

import (
	"image/color"
	"math"
)

// Common overlay colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan   = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Green  = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	Yellow = color.RGBA{R: 234, G: 179, B: 8, A: 255}
	Orange = color.RGBA{R: 249, G: 115, B: 22, A: 255}
	Red    = color.RGBA{R: 239, G: 68, B: 68, A: 255}
)

// HeatRamp maps an intensity in [0,1] to a blue-green-yellow-red heatmap
// color. Intensities outside the range are clamped.
func HeatRamp(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))

	// Piecewise-linear ramp: blue -> cyan -> green -> yellow -> red.
	stops := []color.RGBA{
		{R: 37, G: 99, B: 235, A: 255},
		{R: 6, G: 182, B: 212, A: 255},
		{R: 34, G: 197, B: 94, A: 255},
		{R: 234, G: 179, B: 8, A: 255},
		{R: 239, G: 68, B: 68, A: 255},
	}

	scaled := t * float64(len(stops)-1)
	i := int(scaled)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	f := scaled - float64(i)
	return lerp(stops[i], stops[i+1], f)
}

// SeverityColor maps a severity name to its display color. Unknown
// severities render as yellow.
func SeverityColor(severity string) color.RGBA {
	switch severity {
	case "critical", "high":
		return Red
	case "moderate", "medium":
		return Orange
	case "low", "mild":
		return Yellow
	case "benign", "normal":
		return Green
	default:
		return Yellow
	}
}

// ConfidenceColor maps a confidence in [0,1] to green (high), yellow
// (medium), or red (low).
func ConfidenceColor(confidence float64) color.RGBA {
	switch {
	case confidence >= 0.85:
		return Green
	case confidence >= 0.6:
		return Yellow
	default:
		return Red
	}
}

func lerp(a, b color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*f),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*f),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*f),
		A: 255,
	}
}
