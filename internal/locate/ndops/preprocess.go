package ndops

import (
	"fmt"
	"math"

	"spotfind/internal/locate/arr"
)

// Bandpass computes a Gaussian-minus-boxcar bandpass: blur the image with a
// Gaussian of the given per-axis sigma, subtract a boxcar average of the
// given per-axis size, raise values below threshold (if set) up to it,
// clip negatives to zero, and return the raw float64 result. Rescaling into an integer gamut is a separate
// step (RescaleToGamut) so callers can inspect the float residue if needed.
func Bandpass(raw *arr.Array, noiseSize []float64, smoothingSize []int, threshold *float64) (*arr.Array, error) {
	for _, s := range noiseSize {
		if s <= 0 {
			return nil, fmt.Errorf("bandpass: noise_size must be positive, got %v", noiseSize)
		}
	}
	for _, s := range smoothingSize {
		if s <= 0 {
			return nil, fmt.Errorf("bandpass: smoothing_size must be positive, got %v", smoothingSize)
		}
	}

	g := GaussianBlur(raw, noiseSize)
	b := Boxcar(raw, smoothingSize)

	floor := 0.0
	if threshold != nil {
		floor = *threshold
	}

	out := arr.New(raw.Shape, arr.Float64)
	for i := range out.Data {
		v := g.Data[i] - b.Data[i]
		if v < floor {
			v = floor
		}
		if v < 0 {
			v = 0
		}
		out.Data[i] = v
	}
	return out, nil
}

// Invert negates an image in place semantics (returns a new array): integer
// dtypes are bitwise-complemented within their gamut, floating dtypes
// (assumed normalized to [0, 1]) are mapped to 1 - x.
func Invert(a *arr.Array) *arr.Array {
	out := a.Clone()
	if a.Dtype.Integer() {
		max := a.Dtype.Gamut()
		for i, v := range out.Data {
			out.Data[i] = max - v
		}
	} else {
		for i, v := range out.Data {
			out.Data[i] = 1 - v
		}
	}
	return out
}

// RescaleToGamut linearly stretches non-negative values to fill the gamut
// of dtype and rounds to the nearest integer, tagging the result with
// dtype. This is the final step of preprocessing: floating bandpass output
// always becomes an integer-typed image for the detector.
func RescaleToGamut(a *arr.Array, dtype arr.Dtype) *arr.Array {
	out := arr.New(a.Shape, dtype)
	maxV := a.MaxValue()
	gamut := dtype.Gamut()
	if maxV <= 0 {
		return out // all-zero image; leave as zeros
	}
	scale := gamut / maxV
	for i, v := range a.Data {
		out.Data[i] = math.Round(v * scale)
	}
	return out
}
