// Package diag defines the recoverable-condition type shared across the
// pipeline. Diagnostics are returned alongside a (possibly empty) result
// table rather than raised as errors, per spec.md §7: black image, no
// maxima, all maxima in margins, no survivors, suspected color image.
package diag

// Code identifies which recoverable condition was observed.
type Code string

const (
	BlackImage       Code = "black_image"
	NoMaxima         Code = "no_maxima"
	AllMaximaMargin  Code = "all_maxima_in_margin"
	NoPreFilterLeft  Code = "no_survivors_prefilter"
	NoPostFilterLeft Code = "no_survivors_postfilter"
	SuspectedColor   Code = "suspected_color_image"
)

// Diagnostic is one recoverable, non-fatal condition surfaced by a pipeline
// stage.
type Diagnostic struct {
	Code    Code
	Message string
}

func New(code Code, message string) Diagnostic {
	return Diagnostic{Code: code, Message: message}
}
