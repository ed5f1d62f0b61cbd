// Package batch implements the frame-sequence fan-out named as an
// external collaborator in spec.md §5/§6: the core locator is
// single-image and synchronous, so parallelism across frames is this
// package's job alone. It borrows the teacher's bounded worker-pool
// pattern (internal/algorithms/otsu/core.go's workerPool chan struct{}).
package batch

import (
	"context"
	"runtime"
	"sync"
)

// Frame is one image to locate, carrying whatever index the caller wants
// attached to the result as the table's "frame" column.
type Frame struct {
	Index int
	Image interface{}
}

// Result pairs a frame index with the value its Locate call returned.
type Result struct {
	Index int
	Value interface{}
	Err   error
}

// LocateFunc runs the core pipeline on one frame's image.
type LocateFunc func(ctx context.Context, image interface{}) (interface{}, error)

// Driver fans frames out over a bounded worker pool, sized to the CPU
// count by default. It owns no pipeline state: every worker calls the
// same LocateFunc, which must be safe for concurrent use (the core's
// mask cache is internally synchronized; see spec.md §5).
type Driver struct {
	workerPool chan struct{}
	locate     LocateFunc
	mu         sync.Mutex
	stopped    bool
}

// NewDriver builds a Driver with workers workers (runtime.NumCPU() if
// workers <= 0).
func NewDriver(locate LocateFunc, workers int) *Driver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		pool <- struct{}{}
	}
	return &Driver{workerPool: pool, locate: locate}
}

// Run locates every frame, returning results in input order. Frames are
// independent: an error on one frame does not stop the others. Run
// itself blocks until all frames are processed or ctx is cancelled.
func (d *Driver) Run(ctx context.Context, frames []Frame) []Result {
	results := make([]Result, len(frames))
	var wg sync.WaitGroup

	for i, frame := range frames {
		select {
		case <-ctx.Done():
			results[i] = Result{Index: frame.Index, Err: ctx.Err()}
			continue
		default:
		}

		wg.Add(1)
		go func(i int, f Frame) {
			defer wg.Done()

			select {
			case <-d.workerPool:
				defer func() { d.workerPool <- struct{}{} }()
			case <-ctx.Done():
				results[i] = Result{Index: f.Index, Err: ctx.Err()}
				return
			}

			value, err := d.locate(ctx, f.Image)
			results[i] = Result{Index: f.Index, Value: value, Err: err}
		}(i, frame)
	}

	wg.Wait()
	return results
}

// Shutdown satisfies batch.Shutdownable so a Driver can be registered
// with a ShutdownManager; it simply waits for in-flight workers to
// return their tokens to the pool.
func (d *Driver) Shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true

	// Each in-flight worker returns its token on exit: holding every token
	// at once means none is still running. Put them back afterwards.
	n := cap(d.workerPool)
	for i := 0; i < n; i++ {
		<-d.workerPool
	}
	for i := 0; i < n; i++ {
		d.workerPool <- struct{}{}
	}
}
