package ndops

import (
	"math"

	"spotfind/internal/locate/arr"
	"spotfind/internal/locate/mask"
)

// GreyDilation computes the grayscale dilation of a by the disk footprint
// in set, using a zero-valued constant boundary (scipy's mode='constant',
// cval=0), matching spec.md §4.3 step 2.
func GreyDilation(a *arr.Array, set *mask.Set, radius []int) *arr.Array {
	ndim := len(a.Shape)
	out := arr.New(a.Shape, a.Dtype)
	maskStrides := arr.StridesFor(set.Shape)
	maskCoord := make([]int, ndim)
	imgCoord := make([]int, ndim)

	a.EachCoord(func(coord []int, offset int) {
		best := math.Inf(-1)
		for moff, mv := range set.M {
			if mv == 0 {
				continue
			}
			arr.UnflattenFor(moff, maskStrides, maskCoord)
			inBounds := true
			for k := 0; k < ndim; k++ {
				c := coord[k] + maskCoord[k] - radius[k]
				imgCoord[k] = c
				if c < 0 || c >= a.Shape[k] {
					inBounds = false
				}
			}
			val := 0.0
			if inBounds {
				val = a.At(imgCoord)
			}
			if val > best {
				best = val
			}
		}
		out.Data[offset] = best
	})
	return out
}
