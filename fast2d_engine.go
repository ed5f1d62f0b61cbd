package spotfind

import (
	"fmt"

	"spotfind/internal/locate/arr"
	"spotfind/internal/locate/diag"
	"spotfind/internal/locate/fast2d"
	"spotfind/internal/locate/refine"
)

// fast2DEngine is the gocv-backed engine, restricted to 2D images with an
// isotropic radius (spec.md §9).
type fast2DEngine struct{}

func (fast2DEngine) Name() string { return "fast2d" }

func (fast2DEngine) Supports(ndim int, radius []int) bool {
	return ndim == 2 && radius[0] == radius[1]
}

func (fast2DEngine) Bandpass(raw *arr.Array, noiseSize []float64, smoothingSize []int, threshold *float64) (*arr.Array, error) {
	if len(raw.Shape) != 2 {
		return nil, fmt.Errorf("spotfind: fast2d engine requires a 2D image, got %d dimensions", len(raw.Shape))
	}
	return fast2d.Bandpass(raw, noiseSize[0], smoothingSize[0], threshold)
}

func (e fast2DEngine) LocalMaxima(image *arr.Array, radius []int, percentile float64, margin []int) ([][]int, *diag.Diagnostic, error) {
	if !e.Supports(len(image.Shape), radius) {
		return nil, nil, fmt.Errorf("spotfind: fast2d engine requires a 2D image with an isotropic radius, got %v", radius)
	}
	return fast2d.LocalMaxima(image, radius[0], percentile, margin)
}

// Refine uses refine.RefineFast2D: the 2D, no-interpolation variant
// (spec.md §9). The radius/image restriction is enforced by Supports at
// the LocalMaxima stage already; by the time Refine runs, every
// candidate here came from a 2D isotropic-radius image.
func (fast2DEngine) Refine(raw, image *arr.Array, radius []int, coords [][]int, maxIterations int, characterize bool) []refine.Feature {
	return refine.RefineFast2D(raw, image, radius, coords, maxIterations, characterize)
}
