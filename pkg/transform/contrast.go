package transform

import (
	"math"
	"slices"

	"github.com/matzehuels/pixelup/pkg/pixel"
)

const (
	lowPercentile  = 0.05
	highPercentile = 0.95

	// flatEpsilon is the narrowest luminance window that is stretched.
	flatEpsilon = 1e-6
)

// Contrast applies a mild contrast stretch to opaque pixels.
//
// The window [lo, hi] is the 5th and 95th percentile of opaque-pixel
// luminance. Each channel is normalized against the window, clamped, pushed
// away from the midpoint by (1 + strength), clamped again and scaled back
// to 0..255. Images whose window is narrower than flatEpsilon, and images
// without opaque pixels, are returned unchanged. Pixels with alpha 0 are
// copied byte-for-byte.
func Contrast(src *pixel.Buffer, strength float64) *pixel.Buffer {
	out := src.Clone()

	lo, hi, ok := luminanceWindow(src)
	if !ok || hi <= lo+flatEpsilon {
		return out
	}

	adj := func(c uint8) uint8 {
		t := clamp01((float64(c) - lo) / (hi - lo))
		t = clamp01(0.5 + (t-0.5)*(1+strength))
		return uint8(math.RoundToEven(t * 255))
	}

	for i := 0; i < src.Len(); i++ {
		p := src.Pixel(i)
		if p.A == 0 {
			continue
		}
		out.SetPixel(i, pixel.RGBA{R: adj(p.R), G: adj(p.G), B: adj(p.B), A: p.A})
	}

	pixel.MustMatch(src, out)
	return out
}

// luminanceWindow returns the percentile window over opaque pixels.
func luminanceWindow(b *pixel.Buffer) (lo, hi float64, ok bool) {
	lums := make([]float64, 0, b.Len())
	for i := 0; i < b.Len(); i++ {
		if p := b.Pixel(i); p.A != 0 {
			lums = append(lums, p.Luminance())
		}
	}
	if len(lums) == 0 {
		return 0, 0, false
	}
	slices.Sort(lums)
	last := float64(len(lums) - 1)
	return lums[int(lowPercentile*last)], lums[int(highPercentile*last)], true
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
