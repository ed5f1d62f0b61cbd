package spotfind

import "errors"

// Sentinel errors returned by Locate, checked with errors.Is per spec.md
// §7. Both are always wrapped with context via fmt.Errorf's %w.
var (
	// ErrInvalidArgument covers a malformed configuration: even diameter,
	// non-positive sizes, an unknown engine name, or a configuration the
	// selected engine cannot support.
	ErrInvalidArgument = errors.New("spotfind: invalid argument")

	// ErrTypeMismatch covers an operation that requires an integer-typed
	// image (the peak detector) being given a floating one.
	ErrTypeMismatch = errors.New("spotfind: type mismatch")
)
