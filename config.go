package spotfind

// Config holds the parameters of one Locate call, built via functional
// Options applied over the defaults table in spec.md §6.
type Config struct {
	diameter []int

	separation    []float64
	separationSet bool
	noiseSize     []float64
	smoothingSize []int
	threshold     *float64
	invert        bool
	percentile    float64
	topN          *int
	preprocess    bool
	maxIterations int
	filterBefore  bool
	filterAfter   bool
	characterize  bool
	engine        string
	minMass       float64
	maxSize       *float64
	uncertainty   Estimator
}

// Option configures one field of a Config; see the With* functions below.
type Option func(*Config)

func defaultConfig(diameter []int) *Config {
	smoothing := append([]int(nil), diameter...)
	noise := make([]float64, len(diameter))
	for i := range noise {
		noise[i] = 1
	}
	return &Config{
		diameter:      diameter,
		noiseSize:     noise,
		smoothingSize: smoothing,
		percentile:    64,
		preprocess:    true,
		maxIterations: 10,
		filterBefore:  true,
		filterAfter:   true,
		characterize:  true,
		engine:        "auto",
		minMass:       100,
		uncertainty:   DefaultEstimator{},
	}
}

// WithMinMass sets the mass floor applied by the pre- and post-filters
// (default 100).
func WithMinMass(minMass float64) Option {
	return func(c *Config) { c.minMass = minMass }
}

// WithMaxSize sets the size ceiling applied by the pre- and post-filters
// (default: unset, no ceiling).
func WithMaxSize(maxSize float64) Option {
	return func(c *Config) { c.maxSize = &maxSize }
}

// WithSeparation sets the per-axis deduplication distance (default:
// diameter + 1 per axis).
func WithSeparation(separation []float64) Option {
	return func(c *Config) {
		c.separation = append([]float64(nil), separation...)
		c.separationSet = true
	}
}

// WithNoiseSize sets the bandpass Gaussian sigma, per axis (default: 1).
func WithNoiseSize(noiseSize []float64) Option {
	return func(c *Config) { c.noiseSize = append([]float64(nil), noiseSize...) }
}

// WithSmoothingSize sets the bandpass boxcar size, per axis (default:
// diameter).
func WithSmoothingSize(smoothingSize []int) Option {
	return func(c *Config) { c.smoothingSize = append([]int(nil), smoothingSize...) }
}

// WithThreshold sets the bandpass floor (default: none, i.e. 0).
func WithThreshold(threshold float64) Option {
	return func(c *Config) { c.threshold = &threshold }
}

// WithInvert enables dark-on-light feature detection (default: false).
func WithInvert(invert bool) Option {
	return func(c *Config) { c.invert = invert }
}

// WithPercentile sets the detector's percentile threshold, in [0, 100]
// (default: 64).
func WithPercentile(percentile float64) Option {
	return func(c *Config) { c.percentile = percentile }
}

// WithTopN keeps only the n brightest surviving features (default: none,
// keep all survivors).
func WithTopN(n int) Option {
	return func(c *Config) { c.topN = &n }
}

// WithPreprocess toggles the bandpass step (default: true).
func WithPreprocess(preprocess bool) Option {
	return func(c *Config) { c.preprocess = preprocess }
}

// WithMaxIterations bounds the refiner's per-feature iteration count
// (default: 10).
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.maxIterations = n }
}

// WithFilterBefore toggles the cheap pre-refinement mass/size filter
// (default: true).
func WithFilterBefore(enabled bool) Option {
	return func(c *Config) { c.filterBefore = enabled }
}

// WithFilterAfter toggles the exact post-refinement mass/size filter and
// top-N selection (default: true).
func WithFilterAfter(enabled bool) Option {
	return func(c *Config) { c.filterAfter = enabled }
}

// WithCharacterize toggles size/eccentricity/signal/ep computation
// (default: true; forced off for anisotropic radii regardless of this
// setting).
func WithCharacterize(enabled bool) Option {
	return func(c *Config) { c.characterize = enabled }
}

// WithEngine selects "auto" (default), "scalar", or "fast2d".
func WithEngine(name string) Option {
	return func(c *Config) { c.engine = name }
}

// WithUncertainty overrides the positional-uncertainty model (default:
// DefaultEstimator).
func WithUncertainty(e Estimator) Option {
	return func(c *Config) { c.uncertainty = e }
}
