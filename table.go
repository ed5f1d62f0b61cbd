package spotfind

// Row is one located feature, in the column schema of spec.md §6: Pos is
// reported in reversed axis order (x, y[, z, ...] for the coordinate axes
// as stored in the image, flipped so the fastest-varying array axis reads
// first). Size, Ecc, Signal, and Ep are only meaningful when the Config
// that produced the Table had characterize enabled; otherwise they are
// left at 0.
type Row struct {
	Pos      []float64
	Mass     float64
	Size     float64
	Ecc      float64
	Signal   float64
	Ep       float64
	Frame    int
	HasFrame bool
}

// Table is the ordered result of one Locate call.
type Table struct {
	Rows         []Row
	Characterize bool
}

func reverse(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[len(v)-1-i] = x
	}
	return out
}
