// Package locatetest builds synthetic test images shared across the
// pipeline's _test.go files: spec.md §8's testable properties need the
// same flat-background, single-pixel, and drawn-Gaussian fixtures in
// several packages, so they live here once instead of being
// copy-pasted per package.
package locatetest

import (
	"math"

	"spotfind/internal/locate/arr"
)

// FlatUint8 returns a uint8 image of the given shape filled with value.
func FlatUint8(shape []int, value uint8) *arr.Array {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]uint8, n)
	for i := range data {
		data[i] = value
	}
	return arr.FromUint8(data, shape)
}

// SetPixel sets one sample of a in place (caller-owned array), given an
// N-D coordinate.
func SetPixel(a *arr.Array, coord []int, value float64) {
	a.Set(coord, value)
}

// SetBlock sets every pixel within [lo, hi) (per axis, inclusive lo,
// exclusive hi) to value.
func SetBlock(a *arr.Array, lo, hi []int, value float64) {
	coord := make([]int, len(lo))
	copy(coord, lo)
	setBlockRec(a, coord, lo, hi, 0, value)
}

func setBlockRec(a *arr.Array, coord, lo, hi []int, axis int, value float64) {
	if axis == len(lo) {
		a.Set(coord, value)
		return
	}
	for c := lo[axis]; c < hi[axis]; c++ {
		coord[axis] = c
		setBlockRec(a, coord, lo, hi, axis+1, value)
	}
}

// GaussianSpot2D draws an isotropic 2D Gaussian of the given radius and
// peak amplitude, centered at (cy, cx), onto a flat uint8 background of
// shape (rows, cols) and returns it. The drawn Gaussian is not clipped to
// an integer grid position: cy/cx may be fractional, exercising sub-pixel
// recovery (spec.md §8's Rg-accuracy property).
func GaussianSpot2D(rows, cols int, cy, cx, radius, amplitude, background float64) *arr.Array {
	out := arr.New([]int{rows, cols}, arr.Uint8)
	sigma := radius / math.Sqrt2 // radius here plays the role of trackpy's "size" (rg); a 2D Gaussian's rg is sqrt(2) times its stddev
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			dy := float64(y) - cy
			dx := float64(x) - cx
			v := background + amplitude*math.Exp(-(dy*dy+dx*dx)/(2*sigma*sigma))
			if v > 255 {
				v = 255
			}
			out.Set([]int{y, x}, math.Round(v))
		}
	}
	return out
}
