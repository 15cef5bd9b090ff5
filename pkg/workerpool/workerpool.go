// Package workerpool runs tasks on a fixed number of goroutines behind a
// bounded queue. Submit never blocks: a full queue is reported to the
// caller, which decides whether to drop or degrade.
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/foodtruck-labs/foodtruck/pkg/logger"
)

var (
	ErrPoolFull   = errors.New("workerpool: queue is full")
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

type Pool struct {
	mu      sync.RWMutex
	closed  bool
	tasks   chan func()
	wg      sync.WaitGroup
	stopped chan struct{}
}

// New starts size workers sharing a queue of queueLen pending tasks.
func New(size, queueLen int) *Pool {
	if size <= 0 {
		size = 1
	}
	if queueLen < 0 {
		queueLen = 0
	}

	p := &Pool{
		tasks:   make(chan func(), queueLen),
		stopped: make(chan struct{}),
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.stopped)
	}()
	return p
}

// Submit queues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting tasks and waits until queued tasks finish or ctx
// expires. It is safe to call more than once.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("workerpool: shutdown: %w", ctx.Err())
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		run(task)
	}
}

func run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("workerpool: task panicked", "panic", fmt.Sprint(r))
		}
	}()
	task()
}
