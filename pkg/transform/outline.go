package transform

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/pixelup/pkg/pixel"
)

var neighbours4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Outline darkens silhouette pixels.
//
// The reference color is the opaque pixel with the lowest luminance, the
// first in row-major order on ties. A boundary pixel is an opaque pixel
// whose 4-connected neighbour is transparent or outside the image. Each
// boundary pixel's RGB is interpolated toward the reference by amount;
// alpha is kept. Boundaries are decided on src, never on blended output.
func Outline(src *pixel.Buffer, amount float64) *pixel.Buffer {
	out := src.Clone()

	dark, ok := darkest(src)
	if !ok {
		return out
	}
	target := toColorful(dark)

	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			if !IsBoundary(src, x, y) {
				continue
			}
			p := src.At(x, y)
			blended := toColorful(p).BlendRgb(target, amount).Clamped()
			out.Set(x, y, pixel.RGBA{
				R: to255(blended.R),
				G: to255(blended.G),
				B: to255(blended.B),
				A: p.A,
			})
		}
	}

	pixel.MustMatch(src, out)
	return out
}

// IsBoundary reports whether (x, y) is opaque and touches a transparent
// pixel or the image edge through one of its 4-connected neighbours.
func IsBoundary(b *pixel.Buffer, x, y int) bool {
	if b.At(x, y).A == 0 {
		return false
	}
	for _, d := range neighbours4 {
		nx, ny := x+d[0], y+d[1]
		if !b.In(nx, ny) || b.At(nx, ny).A == 0 {
			return true
		}
	}
	return false
}

// darkest returns the first opaque pixel with minimum luminance.
func darkest(b *pixel.Buffer) (pixel.RGBA, bool) {
	var (
		best    pixel.RGBA
		bestLum float64
		found   bool
	)
	for i := 0; i < b.Len(); i++ {
		p := b.Pixel(i)
		if p.A == 0 {
			continue
		}
		if l := p.Luminance(); !found || l < bestLum {
			best, bestLum, found = p, l, true
		}
	}
	return best, found
}

func toColorful(p pixel.RGBA) colorful.Color {
	return colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
}

func to255(v float64) uint8 {
	return uint8(math.RoundToEven(v * 255))
}
