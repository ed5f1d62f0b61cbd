// Package ndops implements the N-dimensional, pure-Go preprocessing and
// reduction primitives that back the scalar engine: separable Gaussian
// blur, boxcar smoothing, percentile-of-nonzero, grey dilation, gamut
// rescaling, and neighborhood extraction. These operate on arr.Array of
// any rank, which is why they are hand-rolled rather than delegated to
// gocv (2D/3D Mat only) or gonum's mat.Dense (2D only) — see DESIGN.md.
package ndops

import (
	"math"

	"spotfind/internal/locate/arr"
)

// gaussianKernel1D builds a normalized discrete Gaussian kernel truncated at
// 4 standard deviations, matching the common scipy default.
func gaussianKernel1D(sigma float64) (kernel []float64, origin int) {
	radius := int(math.Ceil(4 * sigma))
	if radius < 1 {
		radius = 1
	}
	kernel = make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * (float64(i) / sigma) * (float64(i) / sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel, radius
}

// boxKernel1D builds a uniform averaging kernel of the given width.
func boxKernel1D(size int) (kernel []float64, origin int) {
	if size < 1 {
		size = 1
	}
	kernel = make([]float64, size)
	w := 1.0 / float64(size)
	for i := range kernel {
		kernel[i] = w
	}
	return kernel, size / 2
}

// convolveAxis applies a 1D kernel along one axis with zero-fill boundary.
func convolveAxis(a *arr.Array, axis int, kernel []float64, origin int) *arr.Array {
	out := a.Clone()
	strides := a.Strides()
	axisLen := a.Shape[axis]
	axisStride := strides[axis]

	a.EachCoord(func(coord []int, offset int) {
		if coord[axis] != 0 {
			return
		}
		lineStart := offset
		for pos := 0; pos < axisLen; pos++ {
			acc := 0.0
			for ki, kv := range kernel {
				srcPos := pos + ki - origin
				if srcPos < 0 || srcPos >= axisLen {
					continue // zero boundary extension
				}
				acc += kv * a.Data[lineStart+srcPos*axisStride]
			}
			out.Data[lineStart+pos*axisStride] = acc
		}
	})
	return out
}

// GaussianBlur applies a separable Gaussian blur with one sigma per axis.
func GaussianBlur(a *arr.Array, sigma []float64) *arr.Array {
	cur := a
	for axis, s := range sigma {
		if s <= 0 {
			continue
		}
		kernel, origin := gaussianKernel1D(s)
		cur = convolveAxis(cur, axis, kernel, origin)
	}
	return cur
}

// Boxcar applies a separable uniform (moving-average) filter with one
// window size per axis.
func Boxcar(a *arr.Array, size []int) *arr.Array {
	cur := a
	for axis, sz := range size {
		if sz <= 1 {
			continue
		}
		kernel, origin := boxKernel1D(sz)
		cur = convolveAxis(cur, axis, kernel, origin)
	}
	return cur
}
