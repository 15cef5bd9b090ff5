// Package event is a small in-process publish/subscribe dispatcher. The order
// service fires domain events through it; adapters such as the Kafka
// publisher subscribe without the service knowing about them.
package event

import (
	"context"
	"sync"
)

// Handler receives the payload of a fired event. Handlers run on the
// caller's goroutine and must hand slow work off themselves.
type Handler func(ctx context.Context, payload any)

// Dispatcher maps event names to their listeners.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[string][]Handler{}}
}

// Listen registers h for name.
func (d *Dispatcher) Listen(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Fire calls every listener of name in registration order and returns the
// number of listeners notified.
func (d *Dispatcher) Fire(ctx context.Context, name string, payload any) int {
	d.mu.RLock()
	hs := make([]Handler, len(d.handlers[name]))
	copy(hs, d.handlers[name])
	d.mu.RUnlock()

	for _, h := range hs {
		h(ctx, payload)
	}
	return len(hs)
}

// Flush removes all listeners.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = map[string][]Handler{}
}
