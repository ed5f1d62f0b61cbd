package dedup

import (
	"testing"

	"spotfind/internal/locate/refine"
)

func TestDedupKeepsWellSeparatedFeatures(t *testing.T) {
	features := []refine.Feature{
		{Pos: []float64{0, 0}, Mass: 100},
		{Pos: []float64{100, 100}, Mass: 100},
	}
	out := Dedup(features, []float64{6, 6})
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 (features far apart should both survive)", len(out))
	}
}

func TestDedupDropsDimmerOfAClosePair(t *testing.T) {
	features := []refine.Feature{
		{Pos: []float64{10, 10}, Mass: 50},
		{Pos: []float64{10.5, 10.5}, Mass: 200},
	}
	out := Dedup(features, []float64{6, 6})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Mass != 200 {
		t.Fatalf("Dedup kept the dimmer feature (mass %v), want the brighter one (200)", out[0].Mass)
	}
}

func TestDedupTieBreaksByCoordinateSum(t *testing.T) {
	features := []refine.Feature{
		{Pos: []float64{10, 10}, Mass: 100},
		{Pos: []float64{10.2, 10.2}, Mass: 100},
	}
	out := Dedup(features, []float64{6, 6})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Pos[0] != 10.2 {
		t.Fatalf("on a mass tie, Dedup should keep the feature with the larger coordinate sum; got %v", out[0].Pos)
	}
}

func TestDedupIsPermutationInvariant(t *testing.T) {
	a := []refine.Feature{
		{Pos: []float64{10, 10}, Mass: 50},
		{Pos: []float64{10.5, 10.5}, Mass: 200},
		{Pos: []float64{100, 100}, Mass: 80},
	}
	b := []refine.Feature{a[2], a[0], a[1]}

	outA := Dedup(a, []float64{6, 6})
	outB := Dedup(b, []float64{6, 6})
	if len(outA) != len(outB) {
		t.Fatalf("Dedup is not permutation-invariant in count: %d vs %d", len(outA), len(outB))
	}

	sumA, sumB := 0.0, 0.0
	for _, f := range outA {
		sumA += f.Mass
	}
	for _, f := range outB {
		sumB += f.Mass
	}
	if sumA != sumB {
		t.Fatalf("Dedup is not permutation-invariant in surviving mass: %v vs %v", sumA, sumB)
	}
}
