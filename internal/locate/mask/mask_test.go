package mask

import (
	"math"
	"testing"
)

func TestMasksIsotropicDiskShapeAndCount(t *testing.T) {
	set := Masks([]int{2, 2})
	wantShape := []int{5, 5}
	if len(set.Shape) != 2 || set.Shape[0] != wantShape[0] || set.Shape[1] != wantShape[1] {
		t.Fatalf("Shape = %v, want %v", set.Shape, wantShape)
	}
	if set.Count == 0 || set.Count > 25 {
		t.Fatalf("Count = %d, want a disk strictly between 0 and 25", set.Count)
	}
	// center pixel is always included
	centerOff := 2*5 + 2
	if set.M[centerOff] != 1 {
		t.Fatal("center pixel must be in the mask")
	}
	// the four corners of the bounding box are outside a radius-2 disk
	for _, off := range []int{0, 4, 20, 24} {
		if set.M[off] != 0 {
			t.Errorf("corner offset %d should be outside the disk mask", off)
		}
	}
}

func TestMasksIsMemoized(t *testing.T) {
	a := Masks([]int{3, 3})
	b := Masks([]int{3, 3})
	if a != b {
		t.Fatal("Masks should return the same *Set instance for equal radius vectors")
	}
}

func TestMasksR2MatchesSquaredDistance(t *testing.T) {
	set := Masks([]int{2, 2})
	for off, mv := range set.M {
		if mv == 0 {
			continue
		}
		i, j := off/5, off%5
		want := math.Pow(float64(i-2), 2) + math.Pow(float64(j-2), 2)
		if set.R2[off] != want {
			t.Errorf("R2[%d,%d] = %v, want %v", i, j, set.R2[off], want)
		}
	}
}

func TestAngularsUnitMagnitudeOnMask(t *testing.T) {
	a := Angulars(3)
	set := Masks([]int{3, 3})
	for off, mv := range set.M {
		if mv == 0 || (off/7 == 3 && off%7 == 3) {
			continue // center is excluded by atan2(0,0) = 0, cos(0)=1, sin(0)=0: a degenerate but valid point
		}
		mag := a.C[off]*a.C[off] + a.S[off]*a.S[off]
		if math.Abs(mag-1) > 1e-9 {
			t.Errorf("cos^2+sin^2 at offset %d = %v, want 1", off, mag)
		}
	}
}

func TestAngularsIsMemoized(t *testing.T) {
	a := Angulars(4)
	b := Angulars(4)
	if a != b {
		t.Fatal("Angulars should return the same *Angular instance for equal radii")
	}
}
