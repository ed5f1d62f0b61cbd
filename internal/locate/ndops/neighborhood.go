package ndops

import "spotfind/internal/locate/arr"

// Neighborhood extracts the (2r+1)-per-axis sub-block of img centered at
// center, in the same row-major order as a mask.Set of that radius. The
// mask itself is not applied: callers multiply by or zero outside set.M.
// The block must be fully inside img (callers enforce this via the margin
// invariant from spec.md §4.3); coordinates are not bounds-checked here.
func Neighborhood(img *arr.Array, center []int, radius []int) []float64 {
	shape := make([]int, len(radius))
	for k, r := range radius {
		shape[k] = 2*r + 1
	}
	n := 1
	for _, s := range shape {
		n *= s
	}
	out := make([]float64, n)
	strides := arr.StridesFor(shape)
	coord := make([]int, len(radius))
	imgCoord := make([]int, len(radius))
	for off := 0; off < n; off++ {
		arr.UnflattenFor(off, strides, coord)
		for k := range coord {
			imgCoord[k] = center[k] + coord[k] - radius[k]
		}
		out[off] = img.At(imgCoord)
	}
	return out
}
