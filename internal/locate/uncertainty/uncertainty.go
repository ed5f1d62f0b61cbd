// Package uncertainty estimates the positional uncertainty column (ep)
// attached by the post-filter: SPEC_FULL.md §4.9. spec.md treats the
// uncertainty model's coefficients as an external collaborator; this
// package supplies the interface boundary plus a working default,
// grounded on trackpy's measure_noise/measure_ep (present in the original
// source this was distilled from but dropped from the distillation).
package uncertainty

import (
	"math"

	"spotfind/internal/locate/arr"
)

// Estimator measures the image noise floor once per image and the
// per-feature positional uncertainty from its mass, size, and signal.
type Estimator interface {
	// Noise returns the measured black level and per-pixel noise estimate,
	// taken from a strip along the image border.
	Noise(raw *arr.Array, diameter []int, threshold *float64) (blackLevel, noise float64)
	// Ep returns the estimated positional uncertainty for one feature.
	Ep(mass, size, signal, noise float64, ndim int) float64
}

// DefaultEstimator measures noise as the standard deviation of a
// border strip half as wide as the feature diameter, and estimates ep as
// noise * sqrt(size) / mass (trackpy's formula), which grows with the
// noise-to-signal ratio and the feature's spatial extent.
type DefaultEstimator struct{}

// Noise computes the black level and noise floor from the pixels within
// diameter[k]/2 of any edge, along any axis. If threshold is set and
// nonzero, it is used as the black level directly (the bandpass floor
// already establishes one) and only the noise is measured from the
// border strip.
func (DefaultEstimator) Noise(raw *arr.Array, diameter []int, threshold *float64) (blackLevel, noise float64) {
	border := make([]int, len(diameter))
	for k, d := range diameter {
		border[k] = d / 2
		if border[k] < 1 {
			border[k] = 1
		}
	}

	var values []float64
	raw.EachCoord(func(coord []int, offset int) {
		onBorder := false
		for k, b := range border {
			if coord[k] < b || coord[k] >= raw.Shape[k]-b {
				onBorder = true
				break
			}
		}
		if onBorder {
			values = append(values, raw.Data[offset])
		}
	})

	if len(values) == 0 {
		return 0, 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	noise = math.Sqrt(variance)

	blackLevel = mean
	if threshold != nil && *threshold != 0 {
		blackLevel = *threshold
	}
	return blackLevel, noise
}

// Ep implements trackpy's ep = noise * sqrt(size) / mass, returning 0 for
// a non-positive mass (a zero-mass feature is filtered out upstream, but
// Ep must not divide by zero if called directly).
func (DefaultEstimator) Ep(mass, size, signal, noise float64, ndim int) float64 {
	if mass <= 0 {
		return 0
	}
	return noise * math.Sqrt(size) / mass
}
