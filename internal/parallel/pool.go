// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package parallel

import (
	"runtime"
	"sync"
)

// WorkerPool runs batches of independent jobs on a fixed set of goroutines
// fed from one shared queue.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	jobs    chan func()
	wg      sync.WaitGroup

	// mu is held for reading while a batch is queued and for writing by
	// Close, so the queue is never closed under a sender.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &WorkerPool{
		workers: workers,
		jobs:    make(chan func(), workers*2),
	}
	p.wg.Add(workers)
	for range workers {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// ExecuteAll runs every item and returns when all of them have finished.
// On a closed pool the items run on the caller.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		for _, fn := range work {
			run(fn)
		}
		return
	}

	var batch sync.WaitGroup
	batch.Add(len(work))
	for _, fn := range work {
		p.jobs <- func() {
			defer batch.Done()
			run(fn)
		}
	}
	batch.Wait()
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}

// Close waits for running batches, then stops the workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is accepting work.
func (p *WorkerPool) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

// Map applies fn to every input on the pool and returns the results in input
// order. A nil pool runs fn sequentially on the caller.
func Map[In, Out any](p *WorkerPool, in []In, fn func(In) Out) []Out {
	out := make([]Out, len(in))
	if p == nil || len(in) < 2 {
		for i, v := range in {
			out[i] = fn(v)
		}
		return out
	}

	work := make([]func(), len(in))
	for i, v := range in {
		work[i] = func() { out[i] = fn(v) }
	}
	p.ExecuteAll(work)
	return out
}
