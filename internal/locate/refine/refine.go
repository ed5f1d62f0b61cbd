// Package refine implements the central refinement state machine: spec.md
// §4.5. Starting from an integer candidate, it iterates the masked center
// of mass, walks the integer anchor while the offset is large, then
// switches to one-time-per-iteration sub-pixel interpolation once the
// offset is small, and finally characterizes the converged neighborhood.
// This mirrors trackpy's _refine (pure-Python engine); see feature.py in
// the retrieved trackpy source.
package refine

import (
	"math"

	"spotfind/internal/locate/arr"
	"spotfind/internal/locate/mask"
	"spotfind/internal/locate/ndops"
)

const (
	shiftThresh = 0.6
	eccEpsilon  = 1e-6

	// goodEnoughThresh is the scalar engine's convergence threshold; it
	// runs the full state machine including sub-pixel interpolation, so
	// it can afford to hold out for a tighter residual.
	goodEnoughThresh = 0.005
	// fastGoodEnoughThresh is the fast2d engine's threshold (spec.md §9):
	// looser, since that engine has no interpolation step to close the
	// remaining gap.
	fastGoodEnoughThresh = 0.01
)

// Feature is one refined candidate. Size, Ecc, and Signal are only
// meaningful when characterize was requested; Ecc is NaN outside 2D
// isotropic radii.
type Feature struct {
	Pos    []float64
	Mass   float64
	Size   float64
	Ecc    float64
	Signal float64
}

// Refine walks every candidate to its sub-pixel centroid and, if
// characterize is set, computes size, eccentricity, and signal. raw is
// used only for the final signal measurement; image is the bandpassed
// array used to locate the centroid. This is the scalar engine's full
// N-D state machine, including the sub-pixel spline-interpolation step
// (trackpy's pure-Python `_refine`).
func Refine(raw, image *arr.Array, radius []int, coords [][]int, maxIterations int, characterize bool) []Feature {
	return refineAll(raw, image, radius, coords, maxIterations, characterize, true, goodEnoughThresh)
}

// RefineFast2D is the gocv engine's restricted variant (spec.md §9):
// 2D isotropic radius only (the caller must have already checked this),
// no sub-pixel interpolation step — once the integer-pixel walk lands
// within one pixel of center, the remaining sub-pixel offset is folded
// into the reported position directly and refinement stops, rather than
// resampling the neighborhood to iterate further. Converges to a looser
// threshold (fastGoodEnoughThresh) than the scalar engine for this
// reason, matching trackpy's `_numba_refine`.
func RefineFast2D(raw, image *arr.Array, radius []int, coords [][]int, maxIterations int, characterize bool) []Feature {
	return refineAll(raw, image, radius, coords, maxIterations, characterize, false, fastGoodEnoughThresh)
}

func refineAll(raw, image *arr.Array, radius []int, coords [][]int, maxIterations int, characterize, interpolate bool, threshold float64) []Feature {
	set := mask.Masks(radius)
	ndim := len(radius)
	isotropic2D := ndim == 2 && radius[0] == radius[1]

	var angular *mask.Angular
	if characterize && isotropic2D {
		angular = mask.Angulars(radius[0])
	}

	out := make([]Feature, len(coords))
	for fi, coord := range coords {
		out[fi] = refineOne(raw, image, radius, coord, maxIterations, characterize, interpolate, threshold, set, angular)
	}
	return out
}

func refineOne(raw, image *arr.Array, radius []int, coord []int, maxIterations int, characterize, interpolate bool, threshold float64, set *mask.Set, angular *mask.Angular) Feature {
	ndim := len(radius)
	sliceCoord := append([]int(nil), coord...)
	floatCoord := make([]float64, ndim)
	for k, c := range sliceCoord {
		floatCoord[k] = float64(c)
	}

	nb := maskedNeighborhood(image, sliceCoord, radius, set)
	cm := centerOfMass(nb, set.Shape, radius)
	allowMoves := true

	for iter := 0; iter < maxIterations; iter++ {
		offCenter := make([]float64, ndim)
		for k := range offCenter {
			offCenter[k] = cm[k] - float64(radius[k])
		}

		if allWithin(offCenter, threshold) {
			break
		}

		if allowMoves && anyExceeds(offCenter, shiftThresh) {
			for k := range sliceCoord {
				nc := sliceCoord[k]
				if offCenter[k] > shiftThresh {
					nc++
				} else if offCenter[k] < -shiftThresh {
					nc--
				}
				lower := radius[k]
				upper := image.Shape[k] - 1 - radius[k]
				if nc < lower {
					nc = lower
				}
				if nc > upper {
					nc = upper
				}
				sliceCoord[k] = nc
				floatCoord[k] = float64(nc)
			}
			nb = maskedNeighborhood(image, sliceCoord, radius, set)
		} else if interpolate {
			neg := make([]float64, ndim)
			for k, v := range offCenter {
				neg[k] = -v
			}
			nb = ndops.ShiftBlock(nb, set.Shape, neg)
			for k := range floatCoord {
				floatCoord[k] += offCenter[k]
			}
			allowMoves = false
		} else {
			// No interpolation step in this engine: the integer walk is
			// as far as refinement goes, so fold the residual sub-pixel
			// offset into the reported position and stop.
			for k := range floatCoord {
				floatCoord[k] += offCenter[k]
			}
			for k := range cm {
				cm[k] = float64(radius[k])
			}
			break
		}

		cm = centerOfMass(nb, set.Shape, radius)
	}

	pos := make([]float64, ndim)
	for k := range pos {
		pos[k] = cm[k] - float64(radius[k]) + floatCoord[k]
	}

	mass := sum(nb)
	feat := Feature{Pos: pos, Mass: mass, Size: math.NaN(), Ecc: math.NaN(), Signal: math.NaN()}
	if !characterize {
		return feat
	}

	if mass > 0 {
		acc := 0.0
		for i, v := range nb {
			acc += set.R2[i] * v
		}
		feat.Size = math.Sqrt(acc / mass)
	}

	if angular != nil && mass > 0 {
		ecc1, ecc2 := 0.0, 0.0
		for i, v := range nb {
			ecc1 += angular.C[i] * v
			ecc2 += angular.S[i] * v
		}
		centerOff := centerIndex(set.Shape, radius)
		feat.Ecc = math.Sqrt(ecc1*ecc1+ecc2*ecc2) / (mass - nb[centerOff] + eccEpsilon)
	}

	// Shared by both engines: the maximum raw pixel within the mask.
	// trackpy's numba-accelerated fast path historically updated this
	// from the masked (bandpassed) pixel instead of the raw one whenever
	// it exceeded the running maximum; spec.md §9 calls that a bug and
	// says implementers SHOULD store the true raw maximum, which is what
	// this shared computation does for both RefineFast2D and Refine.
	rawNb := maskedNeighborhood(raw, sliceCoord, radius, set)
	best := 0.0
	for _, v := range rawNb {
		if v > best {
			best = v
		}
	}
	feat.Signal = best

	return feat
}

func maskedNeighborhood(image *arr.Array, center, radius []int, set *mask.Set) []float64 {
	nb := ndops.Neighborhood(image, center, radius)
	for i, mv := range set.M {
		if mv == 0 {
			nb[i] = 0
		}
	}
	return nb
}

// centerOfMass computes the masked center of mass of a local neighborhood
// block in its own local grid coordinates (0..2r per axis). A zero-mass
// block returns radius unchanged, matching trackpy's _safe_center_of_mass
// and yielding pos == the original candidate (spec.md §4.5's failure
// semantics).
func centerOfMass(nb []float64, shape, radius []int) []float64 {
	ndim := len(shape)
	strides := arr.StridesFor(shape)
	cm := make([]float64, ndim)
	total := 0.0
	coord := make([]int, ndim)
	for off, v := range nb {
		if v == 0 {
			continue
		}
		arr.UnflattenFor(off, strides, coord)
		for k := range coord {
			cm[k] += v * float64(coord[k])
		}
		total += v
	}
	if total == 0 {
		for k, r := range radius {
			cm[k] = float64(r)
		}
		return cm
	}
	for k := range cm {
		cm[k] /= total
	}
	return cm
}

func centerIndex(shape, radius []int) int {
	strides := arr.StridesFor(shape)
	off := 0
	for k, r := range radius {
		off += r * strides[k]
	}
	return off
}

func allWithin(v []float64, thresh float64) bool {
	for _, x := range v {
		if math.Abs(x) >= thresh {
			return false
		}
	}
	return true
}

func anyExceeds(v []float64, thresh float64) bool {
	for _, x := range v {
		if math.Abs(x) > thresh {
			return true
		}
	}
	return false
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}
