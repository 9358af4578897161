package transform

import "github.com/matzehuels/pixelup/pkg/pixel"

// DefaultAlphaThreshold is the alpha value a pixel must exceed to count as
// opaque during speckle cleanup.
const DefaultAlphaThreshold uint8 = 1

// neighbours8 lists the 8-connected offsets in scan order. Tie-breaking
// between equally frequent colors follows this order.
var neighbours8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

type colorCount struct {
	c pixel.RGBA
	n int
}

// Cleanup removes isolated speckles.
//
// An opaque pixel (alpha > threshold) with exactly one opaque 8-neighbour
// takes the most frequent exact RGBA among its opaque neighbours. Pixels
// with two or more opaque neighbours, or none at all, are unchanged.
// Out-of-bounds positions are not neighbours.
func Cleanup(src *pixel.Buffer, threshold uint8) *pixel.Buffer {
	out := src.Clone()
	w, h := src.Width(), src.Height()

	var counts []colorCount
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if src.At(x, y).A <= threshold {
				continue
			}

			counts = counts[:0]
			opaque := 0
			for _, d := range neighbours8 {
				nx, ny := x+d[0], y+d[1]
				if !src.In(nx, ny) {
					continue
				}
				n := src.At(nx, ny)
				if n.A <= threshold {
					continue
				}
				opaque++
				counts = tally(counts, n)
			}

			if opaque <= 1 && len(counts) > 0 {
				out.Set(x, y, mostFrequent(counts))
			}
		}
	}

	pixel.MustMatch(src, out)
	return out
}

func tally(counts []colorCount, c pixel.RGBA) []colorCount {
	for i := range counts {
		if counts[i].c == c {
			counts[i].n++
			return counts
		}
	}
	return append(counts, colorCount{c: c, n: 1})
}

// mostFrequent returns the color with the highest count; the first seen
// wins ties.
func mostFrequent(counts []colorCount) pixel.RGBA {
	best := counts[0]
	for _, cc := range counts[1:] {
		if cc.n > best.n {
			best = cc
		}
	}
	return best.c
}
