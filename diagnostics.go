package spotfind

import (
	"spotfind/internal/locate/diag"
	"spotfind/internal/locate/uncertainty"
)

// Diagnostic is one recoverable, non-fatal condition surfaced by Locate
// alongside its (possibly empty) result table: spec.md §7.
type Diagnostic = diag.Diagnostic

// Diagnostic codes, re-exported so callers can switch on them without
// importing internal/locate/diag directly.
const (
	BlackImage       = diag.BlackImage
	NoMaxima         = diag.NoMaxima
	AllMaximaMargin  = diag.AllMaximaMargin
	NoPreFilterLeft  = diag.NoPreFilterLeft
	NoPostFilterLeft = diag.NoPostFilterLeft
	SuspectedColor   = diag.SuspectedColor
)

// Estimator measures per-image noise and per-feature positional
// uncertainty; see internal/locate/uncertainty for the default
// implementation and its grounding.
type Estimator = uncertainty.Estimator

// DefaultEstimator is trackpy's noise*sqrt(size)/mass uncertainty model,
// measured from a border strip half the feature diameter wide.
type DefaultEstimator = uncertainty.DefaultEstimator
