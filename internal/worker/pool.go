// Package worker provides a worker pool for evaluating many encoded
// positions in parallel.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrStopped marks items the pool drained without processing.
var ErrStopped = errors.New("worker pool stopped")

// WorkItem is one encoded position to process.
type WorkItem struct {
	Position string
	Index    int // Original index for re-ordering
}

// ProcessResult is the outcome of processing one item.
type ProcessResult struct {
	Position string
	Index    int
	Payload  interface{} // Opaque result; typed by the caller
	Err      error
}

// ProcessFunc processes a single work item. It must be safe for
// concurrent use.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a set of worker goroutines.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool. processFunc is required; the defaults are one
// worker and a buffer of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish,
// then closes the result channel.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run processes every position and returns the results in input order.
// Cancelling ctx stops the pool; positions that were never processed
// carry ctx's error, or ErrStopped if the context is still live.
func Run(ctx context.Context, positions []string, processFunc ProcessFunc, opts ...PoolOption) []ProcessResult {
	pool := NewPool(processFunc, opts...)
	pool.Start()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pool.Stop()
		case <-done:
		}
	}()

	go func() {
		for i, pos := range positions {
			if pool.IsStopped() {
				break
			}
			pool.Submit(WorkItem{Position: pos, Index: i})
		}
		pool.Close()
	}()

	results := make([]ProcessResult, len(positions))
	filled := make([]bool, len(positions))
	for r := range pool.Results() {
		if r.Index < 0 || r.Index >= len(results) {
			continue
		}
		results[r.Index] = r
		filled[r.Index] = true
	}

	for i, ok := range filled {
		if ok {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = ErrStopped
		}
		results[i] = ProcessResult{Position: positions[i], Index: i, Err: err}
	}
	return results
}
