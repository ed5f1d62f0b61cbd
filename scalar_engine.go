package spotfind

import (
	"spotfind/internal/locate/arr"
	"spotfind/internal/locate/detect"
	"spotfind/internal/locate/diag"
	"spotfind/internal/locate/ndops"
	"spotfind/internal/locate/refine"
)

// scalarEngine is the pure-Go, any-rank, any-aspect-ratio engine built on
// internal/locate/ndops.
type scalarEngine struct{}

func (scalarEngine) Name() string { return "scalar" }

func (scalarEngine) Supports(ndim int, radius []int) bool { return true }

func (scalarEngine) Bandpass(raw *arr.Array, noiseSize []float64, smoothingSize []int, threshold *float64) (*arr.Array, error) {
	return ndops.Bandpass(raw, noiseSize, smoothingSize, threshold)
}

func (scalarEngine) LocalMaxima(image *arr.Array, radius []int, percentile float64, margin []int) ([][]int, *diag.Diagnostic, error) {
	return detect.LocalMaxima(image, radius, percentile, margin)
}

func (scalarEngine) Refine(raw, image *arr.Array, radius []int, coords [][]int, maxIterations int, characterize bool) []refine.Feature {
	return refine.Refine(raw, image, radius, coords, maxIterations, characterize)
}
