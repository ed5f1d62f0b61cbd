package postfilter

import (
	"testing"

	"spotfind/internal/locate/refine"
)

func features() []refine.Feature {
	return []refine.Feature{
		{Pos: []float64{0, 0}, Mass: 10, Size: 1},
		{Pos: []float64{1, 1}, Mass: 50, Size: 2},
		{Pos: []float64{2, 2}, Mass: 30, Size: 3},
	}
}

func TestApplyDropsBelowMinMass(t *testing.T) {
	out := Apply(features(), 20, nil, nil)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	for _, f := range out {
		if f.Mass <= 20 {
			t.Fatalf("Apply kept a feature with mass %v below the floor", f.Mass)
		}
	}
}

func TestApplyDropsAboveMaxSize(t *testing.T) {
	maxSize := 2.5
	out := Apply(features(), 0, &maxSize, nil)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	for _, f := range out {
		if f.Size >= maxSize {
			t.Fatalf("Apply kept a feature with size %v at or above maxSize", f.Size)
		}
	}
}

func TestApplyTopNKeepsLargestMassesStably(t *testing.T) {
	n := 1
	out := Apply(features(), 0, nil, &n)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Mass != 50 {
		t.Fatalf("top-1 by mass should be 50, got %v", out[0].Mass)
	}
}

func TestApplyTopNBeyondSurvivorCountKeepsAll(t *testing.T) {
	n := 100
	out := Apply(features(), 0, nil, &n)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want all 3 survivors when topN exceeds the count", len(out))
	}
}
