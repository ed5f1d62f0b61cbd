// Package fast2d implements the gocv-backed 2D engine: bandpass
// preprocessing and local-maximum detection restricted to an isotropic
// 2D radius, matching spec.md §9's "optimized path" restriction. Mat
// ownership follows the teacher's refcounted/finalizer wrapper
// (internal/opencv/safe/mat.go), trimmed to the single-channel float
// Mats this pipeline actually produces.
package fast2d

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"

	"spotfind/internal/locate/arr"
)

// Mat wraps a gocv.Mat with reference counting and a finalizer, so a
// dropped Mat is reclaimed even if a caller forgets to Close it.
type Mat struct {
	mat      gocv.Mat
	isValid  int32
	refCount int32
	mu       sync.RWMutex
	id       uint64
}

var nextMatID uint64

// NewMatFromArray converts a 2D arr.Array into a single-channel 64-bit
// float Mat. Only 2D arrays are accepted; callers must check
// Supports(ndim, radius) before reaching this engine.
func NewMatFromArray(a *arr.Array) (*Mat, error) {
	if len(a.Shape) != 2 {
		return nil, fmt.Errorf("fast2d: expected a 2D array, got %d dimensions", len(a.Shape))
	}
	rows, cols := a.Shape[0], a.Shape[1]
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV64FC1)
	if m.Empty() {
		m.Close()
		return nil, fmt.Errorf("fast2d: failed to allocate %dx%d Mat", rows, cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.SetDoubleAt(i, j, a.Data[i*cols+j])
		}
	}
	return wrap(m), nil
}

func wrap(m gocv.Mat) *Mat {
	sm := &Mat{mat: m, isValid: 1, refCount: 1, id: atomic.AddUint64(&nextMatID, 1)}
	runtime.SetFinalizer(sm, (*Mat).finalize)
	return sm
}

// ToArray converts the Mat back into an arr.Array of the given dtype.
func (m *Mat) ToArray(dtype arr.Dtype) *arr.Array {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return gocvMatToArray(&m.mat, dtype)
}

func gocvMatToArray(m *gocv.Mat, dtype arr.Dtype) *arr.Array {
	rows, cols := m.Rows(), m.Cols()
	out := arr.New([]int{rows, cols}, dtype)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Data[i*cols+j] = m.GetDoubleAt(i, j)
		}
	}
	return out
}

func (m *Mat) IsValid() bool { return atomic.LoadInt32(&m.isValid) == 1 }

func (m *Mat) Empty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.IsValid() || m.mat.Empty()
}

func (m *Mat) Rows() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.IsValid() {
		return 0
	}
	return m.mat.Rows()
}

func (m *Mat) Cols() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.IsValid() {
		return 0
	}
	return m.mat.Cols()
}

// GocvMat exposes the underlying Mat for operations implemented directly
// against gocv (GaussianBlur, BoxFilter, Dilate, ...). Callers must not
// Close the returned value; ownership stays with the wrapper.
func (m *Mat) GocvMat() *gocv.Mat {
	return &m.mat
}

func (m *Mat) ID() uint64 { return m.id }

func (m *Mat) AddRef() { atomic.AddInt32(&m.refCount, 1) }

func (m *Mat) Release() {
	if atomic.AddInt32(&m.refCount, -1) == 0 {
		m.Close()
	}
}

func (m *Mat) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if atomic.CompareAndSwapInt32(&m.isValid, 1, 0) {
		if !m.mat.Empty() {
			m.mat.Close()
		}
		runtime.SetFinalizer(m, nil)
	}
}

func (m *Mat) finalize() {
	if atomic.LoadInt32(&m.isValid) == 1 {
		m.Close()
	}
}
