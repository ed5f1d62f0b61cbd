// Package dedup removes duplicate refined features that a flat peak can
// produce when the detector reports multiple grid maxima under one true
// feature: spec.md §4.6. Candidates whose positions, rescaled by the
// per-axis separation, are closer than 1 are considered the same feature;
// the dimmer one is dropped, with a deterministic tie-break.
//
// Pairs are found with gonum's k-d tree rather than brute-force pairwise
// comparison, matching trackpy.feature.refine's cKDTree(...).query_pairs(1)
// call.
package dedup

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"spotfind/internal/locate/refine"
)

// Dedup repeatedly removes duplicate pairs until none remain. The input
// slice is not mutated.
func Dedup(features []refine.Feature, separation []float64) []refine.Feature {
	remaining := append([]refine.Feature(nil), features...)
	for {
		n := len(remaining)
		if n < 2 {
			break
		}

		points := make(rescaledPoints, n)
		for i, f := range remaining {
			pos := make([]float64, len(f.Pos))
			for k := range pos {
				pos[k] = f.Pos[k] / separation[k]
			}
			points[i] = rescaledPoint{pos: pos, index: i}
		}

		// kdtree.New reorders points in place (Pivot sorts it), so queries
		// go through an unsorted copy whose position i is feature i.
		queries := append(rescaledPoints(nil), points...)
		tree := kdtree.New(points, false)

		toDrop := make(map[int]bool)
		for i := 0; i < n; i++ {
			if toDrop[i] {
				continue
			}
			keeper := &radiusKeeper{radius: 1.0}
			tree.NearestSet(keeper, queries[i])
			for _, cd := range keeper.found {
				j := cd.Comparable.(rescaledPoint).index
				if j <= i || toDrop[j] {
					continue
				}
				toDrop[pickLoser(i, j, remaining)] = true
			}
		}

		if len(toDrop) == 0 {
			break
		}
		next := remaining[:0]
		for i, f := range remaining {
			if !toDrop[i] {
				next = append(next, f)
			}
		}
		remaining = next
	}
	return remaining
}

// pickLoser returns the index, of the pair (i, j), to drop: the one with
// smaller mass, or on a tie the one whose unscaled position has the
// smaller sum of coordinates (spec.md §4.6's deterministic tie-break).
func pickLoser(i, j int, features []refine.Feature) int {
	mi, mj := features[i].Mass, features[j].Mass
	if mi != mj {
		if mi < mj {
			return i
		}
		return j
	}
	if coordSum(features[i].Pos) <= coordSum(features[j].Pos) {
		return i
	}
	return j
}

func coordSum(pos []float64) float64 {
	s := 0.0
	for _, v := range pos {
		s += v
	}
	return s
}

// rescaledPoint is a kdtree.Comparable carrying the index of the feature
// it was built from, so a tree query can be mapped back to remaining's
// slice position.
type rescaledPoint struct {
	pos   []float64
	index int
}

func (p rescaledPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(rescaledPoint)
	return p.pos[d] - q.pos[d]
}

func (p rescaledPoint) Dims() int { return len(p.pos) }

func (p rescaledPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(rescaledPoint)
	sum := 0.0
	for k, v := range p.pos {
		d := v - q.pos[k]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// rescaledPoints implements kdtree.Interface. Pivot partitions by a full
// sort on the given dimension rather than gonum's internal quickselect
// helpers, trading some build-time efficiency for a smaller, more
// obviously-correct surface against the Interface contract.
type rescaledPoints []rescaledPoint

func (p rescaledPoints) Index(i int) kdtree.Comparable { return p[i] }

func (p rescaledPoints) Len() int { return len(p) }

func (p rescaledPoints) Pivot(d kdtree.Dim) int {
	sort.Sort(axisSorter{points: p, dim: d})
	return len(p) / 2
}

func (p rescaledPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

type axisSorter struct {
	points rescaledPoints
	dim    kdtree.Dim
}

func (s axisSorter) Len() int { return len(s.points) }

func (s axisSorter) Less(i, j int) bool {
	return s.points[i].pos[s.dim] < s.points[j].pos[s.dim]
}

func (s axisSorter) Swap(i, j int) {
	s.points[i], s.points[j] = s.points[j], s.points[i]
}

// radiusKeeper is a kdtree.Keeper that collects every ComparableDist
// strictly closer than radius, instead of the fixed-k nearest neighbors
// kdtree.NKeeper is built for.
type radiusKeeper struct {
	radius float64
	found  []kdtree.ComparableDist
}

func (k *radiusKeeper) Keep(c kdtree.ComparableDist) {
	if c.Dist < k.radius {
		k.found = append(k.found, c)
	}
}

func (k *radiusKeeper) Max() float64 { return k.radius }
