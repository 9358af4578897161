package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// RGBA is a single non-premultiplied pixel.
type RGBA struct {
	R, G, B, A uint8
}

// Color converts p to a standard library color.
func (p RGBA) Color() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// Luminance returns the Rec. 709 relative luminance of p's RGB channels,
// in the same 0..255 range as the channels. Alpha is ignored.
func (p RGBA) Luminance() float64 {
	return Luminance(p.R, p.G, p.B)
}

// Luminance computes L = 0.2126R + 0.7152G + 0.0722B.
func Luminance(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

// Buffer is a fixed-size RGBA raster.
type Buffer struct {
	width  int
	height int
	pix    []RGBA
}

// New creates a fully transparent buffer of the given size.
// It panics if either dimension is negative.
func New(width, height int) *Buffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("pixel: invalid dimensions %dx%d", width, height))
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]RGBA, width*height),
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Len returns the number of pixels.
func (b *Buffer) Len() int { return len(b.pix) }

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// At returns the pixel at (x, y). It panics when out of bounds.
func (b *Buffer) At(x, y int) RGBA {
	return b.pix[b.index(x, y)]
}

// Set stores p at (x, y). It panics when out of bounds.
func (b *Buffer) Set(x, y int, p RGBA) {
	b.pix[b.index(x, y)] = p
}

// Pixel returns the i-th pixel in row-major order.
func (b *Buffer) Pixel(i int) RGBA { return b.pix[i] }

// SetPixel stores p as the i-th pixel in row-major order.
func (b *Buffer) SetPixel(i int, p RGBA) { b.pix[i] = p }

// Clone returns an independent copy of b.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{width: b.width, height: b.height, pix: make([]RGBA, len(b.pix))}
	copy(out.pix, b.pix)
	return out
}

// Equal reports whether a and b have the same size and identical pixels.
func Equal(a, b *Buffer) bool {
	if a.width != b.width || a.height != b.height {
		return false
	}
	for i := range a.pix {
		if a.pix[i] != b.pix[i] {
			return false
		}
	}
	return true
}

// MustMatch panics unless a and b share dimensions. Stages call it on the
// buffers they produce; a mismatch can only come from a bug.
func MustMatch(a, b *Buffer) {
	if a.width != b.width || a.height != b.height {
		panic(fmt.Sprintf("pixel: dimension mismatch %dx%d vs %dx%d", a.width, a.height, b.width, b.height))
	}
}

func (b *Buffer) index(x, y int) int {
	if !b.In(x, y) {
		panic(fmt.Sprintf("pixel: (%d,%d) out of bounds %dx%d", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// Image returns b as a standard library image sharing no memory with b.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, p := range b.pix {
		o := i * 4
		img.Pix[o+0] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = p.A
	}
	return img
}
