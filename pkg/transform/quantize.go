package transform

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/matzehuels/pixelup/pkg/pixel"
)

// DistinctOpaqueColors counts distinct RGB triples among pixels with
// non-zero alpha.
func DistinctOpaqueColors(b *pixel.Buffer) int {
	seen := make(map[[3]uint8]struct{})
	for i := 0; i < b.Len(); i++ {
		p := b.Pixel(i)
		if p.A == 0 {
			continue
		}
		seen[[3]uint8{p.R, p.G, p.B}] = struct{}{}
	}
	return len(seen)
}

// Quantize limits the opaque palette to maxColors.
//
// If the buffer already has at most maxColors distinct opaque RGB values
// it is returned as an unchanged copy. Otherwise a median-cut palette of
// at most maxColors entries is built from the opaque pixels and every
// opaque pixel takes the RGB of its nearest entry. There is no dithering.
// Alpha is carried through per pixel; fully transparent pixels are not
// touched.
func Quantize(src *pixel.Buffer, maxColors int) *pixel.Buffer {
	if maxColors < 1 {
		maxColors = 1
	}
	if DistinctOpaqueColors(src) <= maxColors {
		return src.Clone()
	}

	palette := medianCut(src, maxColors)
	if len(palette) == 0 {
		return src.Clone()
	}
	if len(palette) > maxColors {
		palette = palette[:maxColors]
	}

	out := src.Clone()
	lookup := make(map[[3]uint8]pixel.RGBA)
	for i := 0; i < src.Len(); i++ {
		p := src.Pixel(i)
		if p.A == 0 {
			continue
		}
		key := [3]uint8{p.R, p.G, p.B}
		rep, ok := lookup[key]
		if !ok {
			r, g, b, _ := palette[palette.Index(color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff})].RGBA()
			rep = pixel.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
			lookup[key] = rep
		}
		rep.A = p.A
		out.SetPixel(i, rep)
	}

	pixel.MustMatch(src, out)
	return out
}

// medianCut builds the palette from an opaque RGB view of src, weighting
// out fully transparent pixels.
func medianCut(src *pixel.Buffer, maxColors int) color.Palette {
	view := image.NewRGBA(image.Rect(0, 0, src.Width(), src.Height()))
	for i := 0; i < src.Len(); i++ {
		p := src.Pixel(i)
		o := i * 4
		view.Pix[o+0] = p.R
		view.Pix[o+1] = p.G
		view.Pix[o+2] = p.B
		view.Pix[o+3] = 0xff
	}

	q := quantize.MedianCutQuantizer{
		Aggregation: quantize.Mean,
		Weighting: func(_ image.Image, x, y int) uint32 {
			if src.At(x, y).A == 0 {
				return 0
			}
			return 1
		},
	}
	return q.Quantize(make(color.Palette, 0, maxColors), view)
}
