package batch

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestDriverRunProcessesEveryFrameInOrder(t *testing.T) {
	var concurrent int32
	var maxConcurrent int32

	locate := func(ctx context.Context, image interface{}) (interface{}, error) {
		n := atomic.AddInt32(&concurrent, 1)
		for {
			m := atomic.LoadInt32(&maxConcurrent)
			if n <= m || atomic.CompareAndSwapInt32(&maxConcurrent, m, n) {
				break
			}
		}
		atomic.AddInt32(&concurrent, -1)
		return image.(int) * 2, nil
	}

	d := NewDriver(locate, 4)
	frames := make([]Frame, 10)
	for i := range frames {
		frames[i] = Frame{Index: i, Image: i}
	}

	results := d.Run(context.Background(), frames)
	if len(results) != len(frames) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(frames))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("frame %d returned error: %v", i, r.Err)
		}
		if r.Value.(int) != i*2 {
			t.Fatalf("frame %d = %v, want %d", i, r.Value, i*2)
		}
	}
	if maxConcurrent > 4 {
		t.Fatalf("observed %d concurrent workers, want at most the pool size 4", maxConcurrent)
	}
}

func TestDriverRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	locate := func(ctx context.Context, image interface{}) (interface{}, error) {
		return image, nil
	}

	d := NewDriver(locate, 2)
	frames := []Frame{{Index: 0, Image: 1}}
	results := d.Run(ctx, frames)
	if results[0].Err == nil {
		t.Fatal("Run on an already-cancelled context should report an error for the frame")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	d := NewDriver(func(ctx context.Context, image interface{}) (interface{}, error) { return image, nil }, 1)
	d.Shutdown()
	d.Shutdown() // must not panic or deadlock
}
