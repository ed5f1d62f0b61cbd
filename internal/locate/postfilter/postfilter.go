// Package postfilter applies the final mass/size gate and top-N selection
// to refined features: spec.md §4.7.
package postfilter

import (
	"sort"

	"spotfind/internal/locate/refine"
)

// Apply filters by mass and, if maxSize is set, size, then keeps at most
// topN features by descending mass (ties broken by input order). A nil
// topN keeps everything that survives the mass/size gate.
func Apply(features []refine.Feature, minMass float64, maxSize *float64, topN *int) []refine.Feature {
	kept := make([]refine.Feature, 0, len(features))
	for _, f := range features {
		if f.Mass <= minMass {
			continue
		}
		if maxSize != nil && !(f.Size < *maxSize) {
			continue
		}
		kept = append(kept, f)
	}

	if topN == nil || *topN >= len(kept) {
		return kept
	}

	order := make([]int, len(kept))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return kept[order[a]].Mass > kept[order[b]].Mass
	})

	selected := make([]refine.Feature, *topN)
	for i := 0; i < *topN; i++ {
		selected[i] = kept[order[i]]
	}
	return selected
}
