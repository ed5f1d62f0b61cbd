// Package mask builds the circular structuring elements used by the peak
// detector, pre-filter, and refiner: a binary disk mask M, its squared-radius
// weighting R², and (2D only) the cos(2θ)/sin(2θ) angular masks used for
// eccentricity. Mask sets are pure functions of (radius, ndim) and are
// memoized, matching spec.md §4.1's "deterministic; may be cached" contract.
package mask

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// Set holds the disk mask and its squared-radius weighting for one radius
// vector. Shape is (2r0+1, ..., 2r_{d-1}+1), row-major, matching arr.Array.
type Set struct {
	Shape []int
	M     []float64 // 1 inside the ellipsoid, 0 outside
	R2    []float64 // squared distance to center, restricted to M
	Count int       // number of set pixels in M (Σ M)
}

// Angular holds the cos(2θ)/sin(2θ) masks used for 2D eccentricity. Only
// meaningful for isotropic 2D radii.
type Angular struct {
	Shape []int
	C     []float64
	S     []float64
}

var (
	setCache     sync.Map // string -> *Set
	angularCache sync.Map // string -> *Angular
)

func key(radius []int) string {
	parts := make([]string, len(radius))
	for i, r := range radius {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return strings.Join(parts, ",")
}

// Masks returns the memoized (M, R²) mask set for the given per-axis radius.
// The mask is an ellipsoidal disk: M(i) = 1 iff Σ((i_k - r_k)/r_k)² ≤ 1.
func Masks(radius []int) *Set {
	k := key(radius)
	if v, ok := setCache.Load(k); ok {
		return v.(*Set)
	}
	s := build(radius)
	actual, _ := setCache.LoadOrStore(k, s)
	return actual.(*Set)
}

func build(radius []int) *Set {
	ndim := len(radius)
	shape := make([]int, ndim)
	for i, r := range radius {
		shape[i] = 2*r + 1
	}
	n := 1
	for _, s := range shape {
		n *= s
	}
	m := make([]float64, n)
	r2 := make([]float64, n)

	coord := make([]int, ndim)
	strides := stridesOf(shape)
	count := 0
	for off := 0; off < n; off++ {
		unflatten(off, strides, coord)
		sum := 0.0
		sumSq := 0.0
		for k, r := range radius {
			d := float64(coord[k] - r)
			if r > 0 {
				sum += (d / float64(r)) * (d / float64(r))
			}
			sumSq += d * d
		}
		if sum <= 1.0 {
			m[off] = 1
			r2[off] = sumSq
			count++
		}
	}
	return &Set{Shape: shape, M: m, R2: r2, Count: count}
}

// Angulars returns the memoized (C, S) cos(2θ)/sin(2θ) masks for an
// isotropic 2D radius r. Callers must not invoke this for anisotropic or
// non-2D radii; the orchestrator disables characterization in that case.
func Angulars(r int) *Angular {
	k := fmt.Sprintf("%d", r)
	if v, ok := angularCache.Load(k); ok {
		return v.(*Angular)
	}
	a := buildAngular(r)
	actual, _ := angularCache.LoadOrStore(k, a)
	return actual.(*Angular)
}

func buildAngular(r int) *Angular {
	shape := []int{2*r + 1, 2*r + 1}
	set := Masks([]int{r, r})
	c := make([]float64, len(set.M))
	s := make([]float64, len(set.M))
	for i := 0; i < shape[0]; i++ {
		for j := 0; j < shape[1]; j++ {
			off := i*shape[1] + j
			if set.M[off] == 0 {
				continue
			}
			// spec: C(i) = cos(2*atan2(i1-r1, i0-r0)); i=coord[0] (axis0), j=coord[1] (axis1)
			theta := math.Atan2(float64(j-r), float64(i-r))
			c[off] = math.Cos(2 * theta)
			s[off] = math.Sin(2 * theta)
		}
	}
	return &Angular{Shape: shape, C: c, S: s}
}

func stridesOf(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for k := len(shape) - 1; k >= 0; k-- {
		st[k] = acc
		acc *= shape[k]
	}
	return st
}

func unflatten(off int, strides []int, coord []int) {
	rem := off
	for k, st := range strides {
		coord[k] = rem / st
		rem = rem % st
	}
}
