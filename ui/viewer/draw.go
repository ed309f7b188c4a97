// Package viewer provides the slice canvas widget with pan, zoom, overlays,
// and measurements.
package viewer

import (
	"image"
	"image/color"
	"math"

	"medview/pkg/colorutil"
	"medview/pkg/geometry"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns contains 3x5 pixel patterns for letters and the symbols
// used by overlay and measurement labels.
var letterPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	',': {0b000, 0b000, 0b000, 0b010, 0b100},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	'/': {0b001, 0b001, 0b010, 0b100, 0b100},
	'%': {0b101, 0b001, 0b010, 0b100, 0b101},
	'(': {0b001, 0b010, 0b010, 0b010, 0b001},
	')': {0b100, 0b010, 0b010, 0b010, 0b100},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// charPattern returns the 3x5 pixel pattern for a character.
// Returns a zero pattern for unsupported characters.
func charPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	b := img.Bounds()
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		img.SetRGBA(x, y, c)
	}
}

func blendPixel(img *image.RGBA, x, y int, c color.RGBA, opacity float64) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if opacity >= 0.999 {
		img.SetRGBA(x, y, c)
		return
	}
	if opacity <= 0.001 {
		return
	}
	dst := img.RGBAAt(x, y)
	inv := 1 - opacity
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(c.R)*opacity + float64(dst.R)*inv),
		G: uint8(float64(c.G)*opacity + float64(dst.G)*inv),
		B: uint8(float64(c.B)*opacity + float64(dst.B)*inv),
		A: 255,
	})
}

// drawLine draws a line of the given thickness between two points.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA, thickness int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		drawDot(img, x0, y0, c, thickness)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawDot(img *image.RGBA, x, y int, c color.RGBA, size int) {
	if size <= 1 {
		setPixel(img, x, y, c)
		return
	}
	half := size / 2
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			setPixel(img, x+dx, y+dy, c)
		}
	}
}

// fillCircleRadial fills a circle whose opacity falls off from the center,
// giving heatmap hotspots their glow.
func fillCircleRadial(img *image.RGBA, cx, cy, radius int, c color.RGBA, maxOpacity float64) {
	if radius <= 0 {
		return
	}
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			d := math.Sqrt(dx*dx+dy*dy) / float64(radius)
			if d > 1 {
				continue
			}
			blendPixel(img, x, y, c, maxOpacity*(1-d*d))
		}
	}
}

// fillPolygon scanline-fills a polygon given in output pixel coordinates.
func fillPolygon(img *image.RGBA, pts []image.Point, c color.RGBA, opacity float64) {
	if len(pts) < 3 {
		return
	}

	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	for y := minY; y <= maxY; y++ {
		var xs []int
		j := len(pts) - 1
		for i := 0; i < len(pts); i++ {
			pi, pj := pts[i], pts[j]
			if (pi.Y > y) != (pj.Y > y) {
				x := pi.X + (y-pi.Y)*(pj.X-pi.X)/(pj.Y-pi.Y)
				xs = append(xs, x)
			}
			j = i
		}
		// Insertion sort: crossing counts are tiny.
		for i := 1; i < len(xs); i++ {
			for k := i; k > 0 && xs[k] < xs[k-1]; k-- {
				xs[k], xs[k-1] = xs[k-1], xs[k]
			}
		}
		for i := 0; i+1 < len(xs); i += 2 {
			for x := xs[i]; x <= xs[i+1]; x++ {
				blendPixel(img, x, y, c, opacity)
			}
		}
	}
}

// drawPolygonOutline draws the contour of a polygon.
func drawPolygonOutline(img *image.RGBA, pts []image.Point, c color.RGBA, thickness int) {
	if len(pts) < 2 {
		return
	}
	for i := 0; i < len(pts); i++ {
		next := pts[(i+1)%len(pts)]
		drawLine(img, pts[i].X, pts[i].Y, next.X, next.Y, c, thickness)
	}
}

// drawRectOutline draws a rectangle outline of the given thickness.
func drawRectOutline(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		for x := x0; x <= x1; x++ {
			setPixel(img, x, y0+t, c)
			setPixel(img, x, y1-t, c)
		}
		for y := y0; y <= y1; y++ {
			setPixel(img, x0+t, y, c)
			setPixel(img, x1-t, y, c)
		}
	}
}

// drawLabel renders text with the 3x5 bitmap font at the given scale,
// behind a dark backing box for readability over imagery.
func drawLabel(img *image.RGBA, text string, x, y int, c color.RGBA, scale int) {
	if scale < 1 {
		scale = 1
	}
	charW := 4 * scale // 3 columns + 1 space
	pad := scale

	// Backing box
	w := charW*len([]rune(text)) + 2*pad
	h := 5*scale + 2*pad
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			blendPixel(img, x+dx-pad, y+dy-pad, colorutil.Black, 0.6)
		}
	}

	cx := x
	for _, ch := range text {
		pattern := charPattern(ch)
		for row := 0; row < 5; row++ {
			for col := 0; col < 3; col++ {
				if pattern[row]&(1<<(2-col)) == 0 {
					continue
				}
				for sy := 0; sy < scale; sy++ {
					for sx := 0; sx < scale; sx++ {
						setPixel(img, cx+col*scale+sx, y+row*scale+sy, c)
					}
				}
			}
		}
		cx += charW
	}
}

// toOutputPoints converts percent-coordinate points through the given
// transform into output pixel points.
func toOutputPoints(points []geometry.Point2D, toPx func(geometry.Point2D) (int, int)) []image.Point {
	out := make([]image.Point, len(points))
	for i, p := range points {
		x, y := toPx(p)
		out[i] = image.Point{X: x, Y: y}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
