package spotfind

import "spotfind/internal/locate/arr"

// Image is the input to Locate: a flat, row-major, N-dimensional buffer of
// scalar pixel values. Axis order is caller-defined but fixed; spec.md §3
// leaves it implementation-defined while requiring the reported
// coordinate columns to be in reversed axis order (see Table).
type Image = arr.Array

// NewImageUint8 builds an Image from a row-major uint8 buffer.
func NewImageUint8(data []uint8, shape []int) *Image { return arr.FromUint8(data, shape) }

// NewImageUint16 builds an Image from a row-major uint16 buffer.
func NewImageUint16(data []uint16, shape []int) *Image { return arr.FromUint16(data, shape) }

// NewImageFloat64 builds an Image from a row-major float64 buffer,
// assumed normalized to [0, 1] per spec.md §3's floating-dtype gamut
// convention.
func NewImageFloat64(data []float64, shape []int) *Image {
	return arr.FromFloat64(data, shape, arr.Float64)
}
