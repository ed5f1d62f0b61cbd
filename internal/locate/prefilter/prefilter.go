// Package prefilter applies cheap mass/size estimates to detector
// candidates before the expensive refinement pass: spec.md §4.4. It
// mirrors trackpy's estimate_mass / estimate_size, applied on the integer
// (unrefined) neighborhood.
package prefilter

import (
	"math"

	"spotfind/internal/locate/arr"
	"spotfind/internal/locate/mask"
	"spotfind/internal/locate/ndops"
)

// EstimateMass returns Σ(M·image[slice]) for the neighborhood centered at
// coord.
func EstimateMass(image *arr.Array, coord []int, radius []int, set *mask.Set) float64 {
	nb := ndops.Neighborhood(image, coord, radius)
	mass := 0.0
	for i, mv := range set.M {
		if mv != 0 {
			mass += nb[i]
		}
	}
	return mass
}

// EstimateSize returns sqrt(Σ(R²·M·image[slice]) / mass) for the
// neighborhood centered at coord. Callers must only call this when mass > 0.
func EstimateSize(image *arr.Array, coord []int, radius []int, set *mask.Set, mass float64) float64 {
	nb := ndops.Neighborhood(image, coord, radius)
	acc := 0.0
	for i, mv := range set.M {
		if mv != 0 {
			acc += set.R2[i] * nb[i]
		}
	}
	return math.Sqrt(acc / mass)
}

// Filter retains candidates with mass > minMass and, if maxSize is set,
// size < *maxSize. When maxSize is nil the size estimate is skipped
// entirely (spec.md §4.4's "optionally"), which also makes the filter
// usable before characterization has been decided.
func Filter(image *arr.Array, candidates [][]int, radius []int, minMass float64, maxSize *float64) [][]int {
	set := mask.Masks(radius)
	kept := candidates[:0]
	for _, c := range candidates {
		m := EstimateMass(image, c, radius, set)
		if m <= minMass {
			continue
		}
		if maxSize != nil {
			s := EstimateSize(image, c, radius, set, m)
			if !(s < *maxSize) {
				continue
			}
		}
		kept = append(kept, c)
	}
	return kept
}
