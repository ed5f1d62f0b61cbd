// Package sink implements the ambient result sinks named in SPEC_FULL.md
// §6: Locate itself never does I/O, so writing a Table anywhere is the
// caller's job, and these are the two ready-made ways to do it.
package sink

import (
	"fmt"
	"io"
	"strings"

	"spotfind"
)

// CSVWriter writes a Table to w in the nightlight PrintStars idiom: a
// fixed header line, one row per feature, comma-joined.
type CSVWriter struct {
	w io.Writer
}

// NewCSVWriter wraps w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// Write emits the header and one line per row. Column count depends on
// table.Characterize and the dimensionality of the first row's position
// (all rows share the same dimensionality within one Table).
func (c *CSVWriter) Write(table spotfind.Table) error {
	header := []string{}
	if len(table.Rows) > 0 {
		ndim := len(table.Rows[0].Pos)
		header = append(header, axisNames(ndim)...)
	}
	header = append(header, "mass")
	if table.Characterize {
		header = append(header, "size", "ecc", "signal", "ep")
	}
	if len(table.Rows) > 0 && table.Rows[0].HasFrame {
		header = append(header, "frame")
	}
	if _, err := fmt.Fprintln(c.w, strings.Join(header, ",")); err != nil {
		return err
	}

	for _, row := range table.Rows {
		fields := make([]string, 0, len(header))
		for _, p := range row.Pos {
			fields = append(fields, fmt.Sprintf("%g", p))
		}
		fields = append(fields, fmt.Sprintf("%g", row.Mass))
		if table.Characterize {
			fields = append(fields,
				fmt.Sprintf("%g", row.Size),
				fmt.Sprintf("%g", row.Ecc),
				fmt.Sprintf("%g", row.Signal),
				fmt.Sprintf("%g", row.Ep),
			)
		}
		if row.HasFrame {
			fields = append(fields, fmt.Sprintf("%d", row.Frame))
		}
		if _, err := fmt.Fprintln(c.w, strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}

func axisNames(ndim int) []string {
	switch ndim {
	case 2:
		return []string{"x", "y"}
	case 3:
		return []string{"x", "y", "z"}
	default:
		names := make([]string, ndim)
		for i := range names {
			names[i] = fmt.Sprintf("x%d", i)
		}
		return names
	}
}
