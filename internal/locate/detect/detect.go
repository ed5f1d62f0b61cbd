// Package detect implements the integer-grid local-maximum finder: spec.md
// §4.3. A pixel is a candidate if it equals the grayscale dilation of the
// image by the disk footprint and exceeds a percentile-derived threshold,
// excluding pixels within margin of any edge.
package detect

import (
	"fmt"

	"spotfind/internal/locate/arr"
	"spotfind/internal/locate/diag"
	"spotfind/internal/locate/mask"
	"spotfind/internal/locate/ndops"
)

// ErrTypeMismatch is returned when LocalMaxima is handed a non-integer
// image; the orchestrator's rescale step guarantees this never happens
// internally, but the function is exported and must defend its own
// contract (spec.md §4.3, §7).
type ErrTypeMismatch struct{ Dtype arr.Dtype }

func (e ErrTypeMismatch) Error() string {
	return fmt.Sprintf("detect: local maxima require an integer-typed image, got %s", e.Dtype)
}

// LocalMaxima returns the integer coordinates of local maxima, in the
// array's natural scan order (spec.md §4.3's "downstream stages must not
// rely on any particular order").
func LocalMaxima(image *arr.Array, radius []int, percentile float64, margin []int) ([][]int, *diag.Diagnostic, error) {
	if !image.Dtype.Integer() {
		return nil, nil, ErrTypeMismatch{Dtype: image.Dtype}
	}

	threshold, blackImage := ndops.PercentileOfNonzero(image, percentile)
	if blackImage {
		d := diag.New(diag.BlackImage, "image is completely black")
		return nil, &d, nil
	}

	set := mask.Masks(radius)
	dilated := ndops.GreyDilation(image, set, radius)

	coords, d := CandidatesFromDilation(image, dilated, threshold, margin)
	return coords, d, nil
}

// CandidatesFromDilation applies the equality-with-dilation and
// percentile-threshold test, then the margin rejection, given an already
// computed grey dilation. It is shared by the scalar engine (which
// dilates via ndops.GreyDilation) and the fast2d engine (which dilates
// via gocv.Dilate), so both engines apply the identical candidate and
// margin rules.
func CandidatesFromDilation(image, dilated *arr.Array, threshold float64, margin []int) ([][]int, *diag.Diagnostic) {
	var coords [][]int
	image.EachCoord(func(coord []int, offset int) {
		if image.Data[offset] == dilated.Data[offset] && image.Data[offset] > threshold {
			coords = append(coords, append([]int(nil), coord...))
		}
	})

	if len(coords) == 0 {
		d := diag.New(diag.NoMaxima, "image contains no local maxima")
		return nil, &d
	}

	kept := coords[:0]
	for _, c := range coords {
		inMargin := false
		for k, m := range margin {
			if c[k] < m || c[k] > image.Shape[k]-m-1 {
				inMargin = true
				break
			}
		}
		if !inMargin {
			kept = append(kept, c)
		}
	}

	if len(kept) == 0 {
		d := diag.New(diag.AllMaximaMargin, "all local maxima were in the margins")
		return nil, &d
	}
	return kept, nil
}
