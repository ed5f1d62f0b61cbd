package uncertainty

import (
	"math"
	"testing"

	"spotfind/internal/locate/arr"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNoiseOfAFlatBorderIsZero(t *testing.T) {
	a := arr.FromUint8(make([]uint8, 20*20), []int{20, 20})
	for i := range a.Data {
		a.Data[i] = 10
	}
	blackLevel, noise := DefaultEstimator{}.Noise(a, []int{5, 5}, nil)
	if !almostEqual(blackLevel, 10, 1e-9) {
		t.Fatalf("blackLevel = %v, want 10", blackLevel)
	}
	if !almostEqual(noise, 0, 1e-9) {
		t.Fatalf("noise = %v, want 0 on a flat border", noise)
	}
}

func TestNoiseThresholdOverridesBlackLevel(t *testing.T) {
	a := arr.FromUint8(make([]uint8, 20*20), []int{20, 20})
	threshold := 42.0
	blackLevel, _ := DefaultEstimator{}.Noise(a, []int{5, 5}, &threshold)
	if blackLevel != 42 {
		t.Fatalf("blackLevel = %v, want the explicit threshold 42", blackLevel)
	}
}

func TestEpIsZeroForNonPositiveMass(t *testing.T) {
	if ep := (DefaultEstimator{}).Ep(0, 5, 100, 2, 2); ep != 0 {
		t.Fatalf("Ep with mass=0 = %v, want 0", ep)
	}
}

func TestEpGrowsWithNoise(t *testing.T) {
	lowNoise := (DefaultEstimator{}).Ep(100, 4, 50, 1, 2)
	highNoise := (DefaultEstimator{}).Ep(100, 4, 50, 10, 2)
	if highNoise <= lowNoise {
		t.Fatalf("Ep should grow with noise: low=%v high=%v", lowNoise, highNoise)
	}
}
