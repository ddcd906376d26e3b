package workpool

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// ErrClosed is returned by Submit after Close has been called.
var ErrClosed = errors.New("work pool is closed")

type task struct {
	fn   func()
	done chan struct{}
}

// Pool runs CPU-bound work on a fixed set of workers so concurrent
// callers queue instead of oversubscribing the scheduler. Password
// hashing goes through here to keep bcrypt off the request path.
type Pool struct {
	tasks   chan task
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	workers int
	logger  *zap.Logger
}

// New creates a pool with the given number of workers. workers <= 0
// defaults to the number of CPUs.
func New(workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		tasks:   make(chan task, workers*2),
		workers: workers,
		logger:  logger,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	logger.Debug("Work pool started", zap.Int("workers", workers))

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		t.fn()
		close(t.done)
	}
}

// Run executes fn on a pool worker and blocks until it finishes or ctx
// is cancelled while the task is still queued. A task that has started
// always runs to completion.
func (p *Pool) Run(ctx context.Context, fn func()) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.mu.Unlock()

	t := task{fn: fn, done: make(chan struct{})}

	select {
	case p.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		// Task was already picked up; wait for it so the caller never
		// observes a half-finished result.
		<-t.done
		return nil
	}
}

// Close stops accepting work and waits for in-flight tasks.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Debug("Work pool stopped")
}

// Workers returns the pool size.
func (p *Pool) Workers() int {
	return p.workers
}
