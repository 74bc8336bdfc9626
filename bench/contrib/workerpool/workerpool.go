// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workerpool provides a fixed-size pool of persistent goroutines for
// parallel loops.
//
// A Pool is created once per benchmark run with an explicit worker count and
// passed into every parallel kernel. Two loop schedules are offered:
//
//   - ParallelFor: static row-band partition. [0,n) is split into contiguous
//     bands of near-equal size, one per worker. Use it when every iteration
//     costs about the same (dense matrix rows).
//   - ParallelForAtomic: dynamic scheduling. Workers claim the next unclaimed
//     index from an atomic counter, one index at a time. Use it when the cost
//     per iteration varies (escape-time rows).
//
// Usage:
//
//	pool := workerpool.New(8)
//	defer pool.Close()
//
//	pool.ParallelForAtomic(height, func(row int) {
//	    computeRow(row)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Executor is the subset of Pool used by parallel kernels.
type Executor interface {
	// NumWorkers returns the number of workers available to a parallel loop.
	NumWorkers() int

	// ParallelFor calls fn once per contiguous band of [0,n) and returns
	// after every band has completed.
	ParallelFor(n int, fn func(start, end int))

	// ParallelForAtomic calls fn once per index in [0,n), with workers
	// claiming indexes dynamically, and returns after every index has completed.
	ParallelForAtomic(n int, fn func(i int))
}

// Pool is a fixed set of worker goroutines fed from a shared task queue.
//
// Pool is safe for concurrent use, except that ParallelFor and
// ParallelForAtomic must not be called from inside a pool task: the caller
// blocks on the join barrier while holding a worker.
type Pool struct {
	numWorkers int
	tasks      chan func()
	wg         sync.WaitGroup
	closed     atomic.Bool
	closeOnce  sync.Once
	mu         sync.RWMutex
}

var _ Executor = (*Pool)(nil)

// New starts a pool with numWorkers goroutines.
// If numWorkers is 0 or negative, runtime.GOMAXPROCS(0) is used.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		tasks:      make(chan func(), numWorkers*4),
	}
	for range numWorkers {
		p.wg.Go(p.worker)
	}
	return p
}

func (p *Pool) worker() {
	for task := range p.tasks {
		task()
	}
}

// NumWorkers returns the number of worker goroutines.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Submit queues fn for execution on a worker. A nil fn is ignored.
// After Close, fn runs synchronously on the calling goroutine.
func (p *Pool) Submit(fn func()) {
	if fn == nil {
		return
	}

	p.mu.RLock()
	if p.closed.Load() {
		p.mu.RUnlock()
		fn()
		return
	}
	p.tasks <- fn
	p.mu.RUnlock()
}

// ParallelFor splits [0,n) into min(n, NumWorkers) contiguous bands whose
// sizes differ by at most one, runs fn on each band concurrently, and waits
// for all of them.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	bands := min(n, p.numWorkers)
	if bands == 1 {
		fn(0, n)
		return
	}

	base, extra := n/bands, n%bands

	var done sync.WaitGroup
	done.Add(bands)
	start := 0
	for band := range bands {
		size := base
		if band < extra {
			size++
		}
		bandStart, bandEnd := start, start+size
		start = bandEnd
		p.Submit(func() {
			defer done.Done()
			fn(bandStart, bandEnd)
		})
	}
	done.Wait()
}

// ParallelForAtomic runs fn(i) for every i in [0,n). Each worker repeatedly
// claims the next unclaimed index from a shared atomic counter until the
// range is exhausted, so fast workers pick up the slack of slow ones.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(n, p.numWorkers)
	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var done sync.WaitGroup
	done.Add(workers)
	for range workers {
		p.Submit(func() {
			defer done.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				fn(i)
			}
		})
	}
	done.Wait()
}

// Close stops accepting work and waits for queued tasks to finish.
// Close is idempotent.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed.Store(true)
		close(p.tasks)
		p.mu.Unlock()
		p.wg.Wait()
	})
}
