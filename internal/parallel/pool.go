// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package parallel provides the worker pool that fans out per-field work
// (gathers of one shared reorder) across goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs batches of independent jobs on a fixed set of goroutines.
//
// Each worker has its own queue and steals from the others when idle, so a
// batch mixing large fields (positions) and small ones (flags) still keeps
// every worker busy.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	depth := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			job()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
		}
	}
}

// drain runs whatever is left in q so ExecuteAll callers never hang on Close.
func (p *WorkerPool) drain(q chan func()) {
	for {
		select {
		case job := <-q:
			job()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every job and returns when all have finished.
// Jobs are spread round-robin over the workers. On a closed pool the jobs
// run on the calling goroutine, so the batch always completes.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	if !p.running.Load() {
		for _, job := range jobs {
			job()
		}
		return
	}

	var batch sync.WaitGroup
	batch.Add(len(jobs))
	for i, job := range jobs {
		wrapped := func() {
			defer batch.Done()
			job()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	batch.Wait()
}

// Close stops the workers after the queued jobs have run.
// Close is idempotent.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }
