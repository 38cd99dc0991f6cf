// Package pool implements a fixed pool of goroutines for data-parallel
// table scans. A pooled worker set avoids spawning goroutines per scan
// when a table is marked parallel.
package pool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("worker pool is closed")

// Pool manages a fixed set of worker goroutines.
type Pool struct {
	numWorkers int
	workCh     chan func()
	stopCh     chan struct{}
	wg         sync.WaitGroup
	closed     atomic.Bool
	submitMu   sync.RWMutex
}

// New creates a pool with numWorkers goroutines. A non-positive count
// defaults to GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workCh:     make(chan func(), numWorkers*2),
		stopCh:     make(chan struct{}),
	}
	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.numWorkers }

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopCh:
			// Drain remaining work before exiting
			for {
				select {
				case task, ok := <-p.workCh:
					if !ok {
						return
					}
					task()
				default:
					return
				}
			}
		case task, ok := <-p.workCh:
			if !ok {
				return
			}
			task()
		}
	}
}

// Submit enqueues a task, blocking for backpressure. It fails once the
// pool is closed.
func (p *Pool) Submit(task func()) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()
	if p.closed.Load() {
		return ErrClosed
	}
	select {
	case p.workCh <- task:
		return nil
	case <-p.stopCh:
		return ErrClosed
	}
}

// Each splits [0, n) into one contiguous range per worker, runs fn on
// each range on the pool, and waits. fn must be safe to run concurrently
// with itself on disjoint ranges.
func (p *Pool) Each(n int, fn func(lo, hi int)) error {
	if n <= 0 {
		return nil
	}
	chunk := (n + p.numWorkers - 1) / p.numWorkers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			fn(lo, hi)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}
	wg.Wait()
	return nil
}

// Close shuts the pool down gracefully. Idempotent.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	p.submitMu.Lock()
	close(p.stopCh)
	close(p.workCh)
	p.submitMu.Unlock()
	p.wg.Wait()
}
