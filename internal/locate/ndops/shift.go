package ndops

import (
	"math"

	"spotfind/internal/locate/arr"
)

// ShiftBlock resamples a flat, row-major block of the given shape by a
// per-axis fractional shift, such that out[i] ≈ in[i - shift], with a
// zero-valued boundary outside the block. It approximates scipy's
// order=2 spline resampling with a separable 3-point (quadratic Lagrange)
// interpolation per axis.
func ShiftBlock(data []float64, shape []int, shift []float64) []float64 {
	cur := append([]float64(nil), data...)
	curShape := append([]int(nil), shape...)
	for axis, s := range shift {
		if s == 0 {
			continue
		}
		cur = shiftAxis(cur, curShape, axis, s)
	}
	return cur
}

func shiftAxis(data []float64, shape []int, axis int, shift float64) []float64 {
	out := make([]float64, len(data))
	strides := arr.StridesFor(shape)
	axisLen := shape[axis]
	axisStride := strides[axis]
	ndim := len(shape)

	coord := make([]int, ndim)
	n := len(data)
	for off := 0; off < n; off++ {
		arr.UnflattenFor(off, strides, coord)
		if coord[axis] != 0 {
			continue
		}
		lineStart := off
		for pos := 0; pos < axisLen; pos++ {
			out[lineStart+pos*axisStride] = interpLine(data, lineStart, axisStride, axisLen, float64(pos)-shift)
		}
	}
	return out
}

// interpLine samples a 1D line (given by its start offset and stride) at a
// real position using quadratic Lagrange interpolation through the 3
// integer samples nearest pos, treating out-of-range samples as zero.
func interpLine(data []float64, lineStart, stride, length int, pos float64) float64 {
	base := math.Round(pos)
	t := pos - base
	b := int(base)

	sample := func(i int) float64 {
		if i < 0 || i >= length {
			return 0
		}
		return data[lineStart+i*stride]
	}

	y0 := sample(b - 1)
	y1 := sample(b)
	y2 := sample(b + 1)

	l0 := t * (t - 1) / 2
	l1 := 1 - t*t
	l2 := t * (t + 1) / 2
	return y0*l0 + y1*l1 + y2*l2
}
