package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// =============================================================================
// Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want GOMAXPROCS %d", n, pool.Workers(), runtime.GOMAXPROCS(0))
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	pool.ExecuteAll(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_AllIndices(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var mu sync.Mutex
	seen := make(map[int]bool)

	work := make([]func(), 10)
	for i := range work {
		work[i] = func() {
			mu.Lock()
			seen[i] = true
			mu.Unlock()
		}
	}

	pool.ExecuteAll(work)

	for i := range 10 {
		if !seen[i] {
			t.Errorf("missing index %d in results", i)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Should not panic or block
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_NilPool(t *testing.T) {
	var pool *WorkerPool

	order := make([]int, 0, 3)
	pool.ExecuteAll([]func(){
		func() { order = append(order, 0) },
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	})

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("nil pool order = %v, want [0 1 2]", order)
	}
	if pool.Workers() != 1 {
		t.Errorf("nil Workers() = %d, want 1", pool.Workers())
	}
}

func TestWorkerPool_ExecuteAllAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var counter atomic.Int64
	pool.ExecuteAll([]func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	})

	if counter.Load() != 2 {
		t.Errorf("counter after Close = %d, want 2", counter.Load())
	}
}

// =============================================================================
// ForRows Tests
// =============================================================================

func TestWorkerPool_ForRows(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		rows    int
	}{
		{"single row", 4, 1},
		{"fewer rows than chunks", 4, 5},
		{"exact multiple", 2, 64},
		{"uneven", 3, 1001},
		{"one worker", 1, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()

			hits := make([]int32, tt.rows)
			pool.ForRows(tt.rows, func(start, end int) {
				if start < 0 || end > tt.rows || start >= end {
					t.Errorf("bad chunk [%d, %d)", start, end)
					return
				}
				for y := start; y < end; y++ {
					atomic.AddInt32(&hits[y], 1)
				}
			})

			for y, h := range hits {
				if h != 1 {
					t.Errorf("row %d visited %d times, want 1", y, h)
				}
			}
		})
	}
}

func TestWorkerPool_ForRowsZero(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	called := false
	pool.ForRows(0, func(int, int) { called = true })
	pool.ForRows(-4, func(int, int) { called = true })
	if called {
		t.Error("ForRows(<=0) called fn")
	}
}

func TestWorkerPool_ForRowsNilPool(t *testing.T) {
	var pool *WorkerPool

	var calls [][2]int
	pool.ForRows(9, func(start, end int) {
		calls = append(calls, [2]int{start, end})
	})

	if len(calls) != 1 || calls[0] != [2]int{0, 9} {
		t.Errorf("nil pool chunks = %v, want [[0 9]]", calls)
	}
}

func TestWorkerPool_ForRowsDeterministic(t *testing.T) {
	// The same per-row computation must give identical output whatever the
	// worker count.
	const rows = 257
	compute := func(workers int) []float64 {
		pool := NewWorkerPool(workers)
		defer pool.Close()
		out := make([]float64, rows)
		pool.ForRows(rows, func(start, end int) {
			for y := start; y < end; y++ {
				v := 0.0
				for k := range 100 {
					v += float64(y*k) * 1e-3
				}
				out[y] = v
			}
		})
		return out
	}

	want := compute(1)
	for _, w := range []int{2, 5, 16} {
		got := compute(w)
		for y := range rows {
			if got[y] != want[y] {
				t.Fatalf("workers=%d: row %d = %v, want %v", w, y, got[y], want[y])
			}
		}
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	pool.Close()
	pool.Close()
	pool.Close()

	var nilPool *WorkerPool
	nilPool.Close()
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 10 {
		pool := NewWorkerPool(4)
		pool.ForRows(100, func(int, int) {})
		pool.Close()
	}

	runtime.GC()
	after := runtime.NumGoroutine()
	if after > before+2 {
		t.Errorf("goroutines before = %d, after = %d", before, after)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ForRows(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	out := make([]float64, 2160)
	b.ResetTimer()
	for range b.N {
		pool.ForRows(len(out), func(start, end int) {
			for y := start; y < end; y++ {
				out[y] = float64(y) * 0.5
			}
		})
	}
}
