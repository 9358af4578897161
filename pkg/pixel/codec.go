package pixel

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/pixelup/pkg/errors"
)

// ErrDecode matches any error produced by a failed decode.
var ErrDecode = errors.Sentinel(errors.ErrCodeDecode)

// Decode reads a PNG from r and coerces it to RGBA.
// Malformed or non-PNG input fails with an ErrDecode-coded error.
func Decode(r io.Reader) (*Buffer, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode png")
	}
	return FromImage(img), nil
}

// DecodeBytes is Decode over an in-memory PNG.
func DecodeBytes(data []byte) (*Buffer, error) {
	return Decode(bytes.NewReader(data))
}

// FromImage converts any image to a Buffer, rebasing its bounds to (0, 0).
//
// NRGBA, 16-bit NRGBA and paletted sources are copied value-for-value so
// transparent pixels keep their color channels; 16-bit channels keep their
// high byte. Other color models go through x/image/draw, which composes via
// premultiplied alpha.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy())

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < b.height; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < b.width; x++ {
				o := x * 4
				b.pix[y*b.width+x] = RGBA{R: row[o], G: row[o+1], B: row[o+2], A: row[o+3]}
			}
		}
	case *image.NRGBA64:
		for y := 0; y < b.height; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < b.width; x++ {
				o := x * 8
				b.pix[y*b.width+x] = RGBA{R: row[o], G: row[o+2], B: row[o+4], A: row[o+6]}
			}
		}
	case *image.Paletted:
		palette := make([]RGBA, len(src.Palette))
		for i, c := range src.Palette {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			palette[i] = RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
		}
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				idx := src.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)
				if int(idx) < len(palette) {
					b.pix[y*b.width+x] = palette[idx]
				}
			}
		}
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
		xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
		for i := range b.pix {
			o := i * 4
			b.pix[i] = RGBA{R: dst.Pix[o], G: dst.Pix[o+1], B: dst.Pix[o+2], A: dst.Pix[o+3]}
		}
	}
	return b
}

// rgbaImage forces the PNG encoder to emit a color type with an alpha
// channel even when every pixel is opaque.
type rgbaImage struct {
	*image.NRGBA
}

func (rgbaImage) Opaque() bool { return false }

// Encode writes b to w as an 8-bit RGBA PNG.
func Encode(w io.Writer, b *Buffer) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, rgbaImage{b.Image()}); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode png")
	}
	return nil
}

// EncodeBytes is Encode into a new byte slice.
func EncodeBytes(b *Buffer) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load decodes the PNG at path. The file is closed before Load returns.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "load %s", path)
	}
	return b, nil
}

// Save encodes b as PNG and writes it to path, replacing any existing file.
func Save(path string, b *Buffer) error {
	data, err := EncodeBytes(b)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile writes already-encoded PNG bytes to path.
func WriteFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
