package transform

import "github.com/matzehuels/pixelup/pkg/pixel"

var (
	blank  = pixel.RGBA{}
	red    = pixel.RGBA{R: 255, A: 255}
	green  = pixel.RGBA{G: 255, A: 255}
	blue   = pixel.RGBA{B: 255, A: 255}
	white  = pixel.RGBA{R: 255, G: 255, B: 255, A: 255}
	black  = pixel.RGBA{A: 255}
	purple = pixel.RGBA{R: 128, B: 128, A: 255}
)

// grid builds a buffer from rows of pixels.
func grid(rows ...[]pixel.RGBA) *pixel.Buffer {
	b := pixel.New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, p := range row {
			b.Set(x, y, p)
		}
	}
	return b
}

// ramp builds a w x h buffer where every pixel has a distinct color.
func ramp(w, h int) *pixel.Buffer {
	b := pixel.New(w, h)
	for i := 0; i < b.Len(); i++ {
		b.SetPixel(i, pixel.RGBA{R: uint8(i * 7), G: uint8(i * 13), B: uint8(255 - i*3), A: 255})
	}
	return b
}
