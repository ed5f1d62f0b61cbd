// Package spotfind locates approximately Gaussian bright features in 2D
// and N-D grayscale images and reports, for each, a sub-pixel centroid,
// integrated brightness ("mass"), radius of gyration ("size"),
// eccentricity, peak signal, and an estimated positional uncertainty. It
// is a Go implementation of the Crocker-Grier centroid algorithm used in
// particle-tracking microscopy.
package spotfind

import (
	"errors"
	"fmt"

	"spotfind/internal/locate/arr"
	"spotfind/internal/locate/dedup"
	"spotfind/internal/locate/detect"
	"spotfind/internal/locate/ndops"
	"spotfind/internal/locate/postfilter"
	"spotfind/internal/locate/prefilter"
)

// Locate runs the full feature-finding pipeline on one image: bandpass
// preprocessing, integer-grid local-maximum detection, pre-filtering,
// sub-pixel refinement, duplicate suppression, and mass/size filtering (spec.md
// §2). It returns the result table alongside any recoverable diagnostics
// (spec.md §7); it never does I/O and is safe to call concurrently on
// independent images from multiple goroutines (see internal/batch).
func Locate(image *Image, diameter []int, opts ...Option) (Table, []Diagnostic, error) {
	cfg := defaultConfig(diameter)
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validate(image, cfg); err != nil {
		return Table{}, nil, err
	}

	ndim := len(cfg.diameter)
	radius := make([]int, ndim)
	for k, d := range cfg.diameter {
		radius[k] = d / 2
	}

	if !cfg.separationSet {
		cfg.separation = make([]float64, ndim)
		for k, d := range cfg.diameter {
			cfg.separation[k] = float64(d + 1)
		}
	}

	characterize := cfg.characterize
	isotropic := true
	for k := 1; k < ndim; k++ {
		if radius[k] != radius[0] {
			isotropic = false
			break
		}
	}
	if !isotropic {
		characterize = false
	}

	var diagnostics []Diagnostic
	for _, s := range image.Shape {
		if s == 3 || s == 4 {
			diagnostics = append(diagnostics, Diagnostic{
				Code:    SuspectedColor,
				Message: fmt.Sprintf("interpreting the image as %d-dimensional; if it is actually a %d-dimensional color image, convert it to grayscale first", ndim, ndim-1),
			})
			break
		}
	}

	engine, err := defaultEngines.resolve(cfg.engine, ndim, radius)
	if err != nil {
		return Table{}, diagnostics, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	working := image
	if cfg.invert {
		working = ndops.Invert(working)
	}

	raw := working
	if cfg.preprocess {
		bandpassed, err := engine.Bandpass(working, cfg.noiseSize, cfg.smoothingSize, cfg.threshold)
		if err != nil {
			return Table{}, diagnostics, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		outDtype := working.Dtype
		if !outDtype.Integer() {
			outDtype = arr.Uint8
		}
		working = ndops.RescaleToGamut(bandpassed, outDtype)
	}

	margin := make([]int, ndim)
	for k := range margin {
		m := radius[k]
		if v := int(cfg.separation[k]/2) - 1; v > m {
			m = v
		}
		if v := cfg.smoothingSize[k] / 2; v > m {
			m = v
		}
		margin[k] = m
	}

	coords, d, err := engine.LocalMaxima(working, radius, cfg.percentile, margin)
	if err != nil {
		var mismatch detect.ErrTypeMismatch
		if errors.As(err, &mismatch) {
			return Table{}, diagnostics, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return Table{}, diagnostics, err
	}
	if d != nil {
		diagnostics = append(diagnostics, *d)
	}
	if len(coords) == 0 {
		return Table{Characterize: characterize}, diagnostics, nil
	}

	if cfg.filterBefore {
		before := len(coords)
		coords = prefilter.Filter(working, coords, radius, cfg.minMass, cfg.maxSize)
		if len(coords) == 0 && before > 0 {
			diagnostics = append(diagnostics, Diagnostic{Code: NoPreFilterLeft, Message: "no candidates survived the pre-filter"})
			return Table{Characterize: characterize}, diagnostics, nil
		}
	}

	features := engine.Refine(raw, working, radius, coords, cfg.maxIterations, characterize)

	hasSeparation := false
	for _, s := range cfg.separation {
		if s > 0 {
			hasSeparation = true
			break
		}
	}
	if hasSeparation {
		features = dedup.Dedup(features, cfg.separation)
	}

	if cfg.filterAfter {
		before := len(features)
		features = postfilter.Apply(features, cfg.minMass, cfg.maxSize, cfg.topN)
		if len(features) == 0 && before > 0 {
			diagnostics = append(diagnostics, Diagnostic{Code: NoPostFilterLeft, Message: "no features survived the post-filter"})
			return Table{Characterize: characterize}, diagnostics, nil
		}
	}

	var blackLevel, noise float64
	if characterize {
		blackLevel, noise = cfg.uncertainty.Noise(raw, cfg.diameter, cfg.threshold)
	}

	rows := make([]Row, len(features))
	for i, f := range features {
		row := Row{Pos: reverse(f.Pos), Mass: f.Mass}
		if characterize {
			row.Size = f.Size
			row.Ecc = f.Ecc
			row.Signal = f.Signal - blackLevel
			row.Ep = cfg.uncertainty.Ep(f.Mass, f.Size, f.Signal, noise, ndim)
		}
		rows[i] = row
	}

	return Table{Rows: rows, Characterize: characterize}, diagnostics, nil
}

func validate(image *Image, cfg *Config) error {
	if image == nil || len(image.Shape) == 0 {
		return fmt.Errorf("%w: image must be non-nil with at least one axis", ErrInvalidArgument)
	}
	if len(cfg.diameter) != len(image.Shape) {
		return fmt.Errorf("%w: diameter has %d axes, image has %d", ErrInvalidArgument, len(cfg.diameter), len(image.Shape))
	}
	for _, d := range cfg.diameter {
		if d <= 0 || d%2 == 0 {
			return fmt.Errorf("%w: diameter must be a positive odd integer per axis, got %v", ErrInvalidArgument, cfg.diameter)
		}
	}
	for _, s := range cfg.noiseSize {
		if s <= 0 {
			return fmt.Errorf("%w: noise_size must be positive, got %v", ErrInvalidArgument, cfg.noiseSize)
		}
	}
	for _, s := range cfg.smoothingSize {
		if s <= 0 {
			return fmt.Errorf("%w: smoothing_size must be positive, got %v", ErrInvalidArgument, cfg.smoothingSize)
		}
	}
	if cfg.percentile < 0 || cfg.percentile > 100 {
		return fmt.Errorf("%w: percentile must be within [0, 100], got %v", ErrInvalidArgument, cfg.percentile)
	}
	if cfg.engine != "auto" {
		if _, err := defaultEngines.get(cfg.engine); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	return nil
}
