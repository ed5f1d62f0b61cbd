package spotfind

import (
	"fmt"
	"sync"

	"spotfind/internal/locate/arr"
	"spotfind/internal/locate/diag"
	"spotfind/internal/locate/refine"
)

// Engine performs the preprocessing, peak-detection, and refinement
// stages: spec.md §4.2/§4.3/§4.5/§9. Two engines are registered: "scalar"
// (internal/locate/ndops+refine.Refine, any rank, any aspect ratio, full
// sub-pixel interpolation) and "fast2d" (internal/locate/fast2d+
// refine.RefineFast2D, gocv-backed, 2D isotropic radius only, no
// interpolation, matching spec.md §9's "optimized path" restriction).
type Engine interface {
	Name() string
	// Supports reports whether this engine can handle the given image rank
	// and radius vector.
	Supports(ndim int, radius []int) bool
	Bandpass(raw *arr.Array, noiseSize []float64, smoothingSize []int, threshold *float64) (*arr.Array, error)
	LocalMaxima(image *arr.Array, radius []int, percentile float64, margin []int) ([][]int, *diag.Diagnostic, error)
	Refine(raw, image *arr.Array, radius []int, coords [][]int, maxIterations int, characterize bool) []refine.Feature
}

// engineManager is a small registry, adapted from the teacher's
// algorithms.Manager: a name-keyed map guarded by a RWMutex, with an
// "auto" resolution step layered on top for engine selection.
type engineManager struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

func newEngineManager() *engineManager {
	m := &engineManager{engines: make(map[string]Engine)}
	m.register(scalarEngine{})
	m.register(fast2DEngine{})
	return m
}

func (m *engineManager) register(e Engine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engines[e.Name()] = e
}

func (m *engineManager) get(name string) (Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.engines[name]
	if !ok {
		return nil, fmt.Errorf("spotfind: unknown engine %q", name)
	}
	return e, nil
}

// resolve implements the "auto" policy: prefer fast2d when it supports
// the image's rank and radius, otherwise fall back to scalar.
func (m *engineManager) resolve(name string, ndim int, radius []int) (Engine, error) {
	if name != "auto" {
		e, err := m.get(name)
		if err != nil {
			return nil, err
		}
		if !e.Supports(ndim, radius) {
			return nil, fmt.Errorf("spotfind: engine %q does not support a %d-D image with radius %v", name, ndim, radius)
		}
		return e, nil
	}

	fast, err := m.get("fast2d")
	if err == nil && fast.Supports(ndim, radius) {
		return fast, nil
	}
	return m.get("scalar")
}

var defaultEngines = newEngineManager()
