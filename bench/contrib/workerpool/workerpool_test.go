// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewDefaultsToGOMAXPROCS(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if got, want := pool.NumWorkers(), runtime.GOMAXPROCS(0); got != want {
		t.Errorf("NumWorkers() = %d, want %d", got, want)
	}
}

func TestParallelForCoversEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 4, 8} {
		for _, n := range []int{0, 1, 2, 7, 8, 9, 100, 1023} {
			t.Run(fmt.Sprintf("workers=%d/n=%d", workers, n), func(t *testing.T) {
				pool := New(workers)
				defer pool.Close()

				hits := make([]atomic.Int32, n)
				pool.ParallelFor(n, func(start, end int) {
					for i := start; i < end; i++ {
						hits[i].Add(1)
					}
				})

				for i := range hits {
					if got := hits[i].Load(); got != 1 {
						t.Errorf("index %d visited %d times, want 1", i, got)
					}
				}
			})
		}
	}
}

func TestParallelForBandsAreBalanced(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var mu sync.Mutex
	var sizes []int
	pool.ParallelFor(10, func(start, end int) {
		mu.Lock()
		sizes = append(sizes, end-start)
		mu.Unlock()
	})

	if len(sizes) != 4 {
		t.Fatalf("got %d bands, want 4", len(sizes))
	}
	lo, hi := sizes[0], sizes[0]
	for _, s := range sizes {
		lo = min(lo, s)
		hi = max(hi, s)
	}
	if hi-lo > 1 {
		t.Errorf("band sizes %v differ by more than one", sizes)
	}
}

func TestParallelForAtomicCoversEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 5, 8} {
		for _, n := range []int{0, 1, 3, 64, 480} {
			t.Run(fmt.Sprintf("workers=%d/n=%d", workers, n), func(t *testing.T) {
				pool := New(workers)
				defer pool.Close()

				hits := make([]atomic.Int32, n)
				pool.ParallelForAtomic(n, func(i int) {
					hits[i].Add(1)
				})

				for i := range hits {
					if got := hits[i].Load(); got != 1 {
						t.Errorf("index %d visited %d times, want 1", i, got)
					}
				}
			})
		}
	}
}

// TestParallelForAtomicBoundsConcurrency checks that no more than NumWorkers
// invocations of fn are in flight at once.
func TestParallelForAtomicBoundsConcurrency(t *testing.T) {
	const workers = 3
	pool := New(workers)
	defer pool.Close()

	var inFlight, peak atomic.Int32
	pool.ParallelForAtomic(200, func(int) {
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		runtime.Gosched()
		inFlight.Add(-1)
	})

	if got := peak.Load(); got > workers {
		t.Errorf("peak concurrency %d exceeds %d workers", got, workers)
	}
}

func TestSubmit(t *testing.T) {
	pool := New(2)

	var executed atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)
	pool.Submit(func() {
		defer wg.Done()
		executed.Store(true)
	})
	wg.Wait()

	if !executed.Load() {
		t.Error("submitted task did not run")
	}

	pool.Submit(nil)
	pool.Close()
}

func TestSubmitAfterCloseRunsInline(t *testing.T) {
	pool := New(2)
	pool.Close()

	ran := false
	pool.Submit(func() { ran = true })
	if !ran {
		t.Error("task submitted after Close did not run inline")
	}

	// Parallel loops still complete on a closed pool.
	sum := 0
	var mu sync.Mutex
	pool.ParallelFor(10, func(start, end int) {
		mu.Lock()
		sum += end - start
		mu.Unlock()
	})
	if sum != 10 {
		t.Errorf("ParallelFor on closed pool covered %d indexes, want 10", sum)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()
}

func BenchmarkParallelForAtomic(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	out := make([]int, 4096)
	for b.Loop() {
		pool.ParallelForAtomic(len(out), func(i int) {
			out[i] = i * i
		})
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	out := make([]int, 4096)
	for b.Loop() {
		pool.ParallelFor(len(out), func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = i * i
			}
		})
	}
}
