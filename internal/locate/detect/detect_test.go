package detect

import (
	"testing"

	"spotfind/internal/locate/arr"
)

func TestLocalMaximaOnBlackImageReturnsDiagnostic(t *testing.T) {
	a := arr.New([]int{11, 11}, arr.Uint8)
	coords, d, err := LocalMaxima(a, []int{2, 2}, 64, []int{2, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coords) != 0 {
		t.Fatalf("a black image should yield no candidates, got %v", coords)
	}
	if d == nil {
		t.Fatal("a black image should report a diagnostic")
	}
}

func TestLocalMaximaRejectsFloatingImages(t *testing.T) {
	a := arr.FromFloat64([]float64{0, 1, 0, 1}, []int{2, 2}, arr.Float64)
	_, _, err := LocalMaxima(a, []int{1, 1}, 0, []int{1, 1})
	if err == nil {
		t.Fatal("LocalMaxima must reject a non-integer image")
	}
	if _, ok := err.(ErrTypeMismatch); !ok {
		t.Fatalf("error = %T, want ErrTypeMismatch", err)
	}
}

func TestLocalMaximaFindsIsolatedPeak(t *testing.T) {
	a := arr.FromUint8(make([]uint8, 21*23), []int{21, 23})
	a.Set([]int{11, 13}, 100)
	a.Set([]int{5, 5}, 10) // a dimmer background point, so the 0th percentile sits below the peak
	coords, d, err := LocalMaxima(a, []int{2, 2}, 0, []int{2, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != nil {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	found := false
	for _, c := range coords {
		if c[0] == 11 && c[1] == 13 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected (11,13) among candidates, got %v", coords)
	}
}

func TestLocalMaximaExcludesMargin(t *testing.T) {
	a := arr.FromUint8(make([]uint8, 21*23), []int{21, 23})
	a.Set([]int{0, 0}, 100)  // in the corner, inside any nonzero margin
	a.Set([]int{10, 10}, 10) // dimmer interior point, so the 0th percentile sits below the corner peak
	coords, d, err := LocalMaxima(a, []int{2, 2}, 0, []int{3, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coords) != 0 {
		t.Fatalf("a peak inside the margin must be excluded, got %v", coords)
	}
	if d == nil || d.Code != "all_maxima_in_margin" {
		t.Fatalf("expected an all-maxima-in-margin diagnostic, got %+v", d)
	}
}
