package ndops

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"spotfind/internal/locate/arr"
)

// PercentileOfNonzero computes the p-th percentile (p in [0, 100]) of the
// array's nonzero samples, matching spec.md §4.2's percentile_threshold.
// blackImage is true when every sample is zero, in which case threshold is
// meaningless and the caller should emit the "black image" diagnostic.
func PercentileOfNonzero(a *arr.Array, p float64) (threshold float64, blackImage bool) {
	nonzero := make([]float64, 0, len(a.Data))
	for _, v := range a.Data {
		if v != 0 {
			nonzero = append(nonzero, v)
		}
	}
	if len(nonzero) == 0 {
		return 0, true
	}
	sort.Float64s(nonzero)
	return stat.Quantile(p/100.0, stat.LinInterp, nonzero, nil), false
}
