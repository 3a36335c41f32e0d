// Package notice provides a small fan-out bus for fire-and-forget
// broadcasts. The manager uses it to announce newly stored errors to
// zero or more external observers; nothing in the core depends on any
// observer being present.
package notice

import "sync"

// Bus broadcasts values of type T to all current subscribers.
// Publish is synchronous: every handler runs on the publishing goroutine
// before Publish returns. Handlers must not fail destructively; the bus
// does not guard against panics.
type Bus[T any] struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(T)
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns a cancel function that removes it.
// Cancel is idempotent.
func (b *Bus[T]) Subscribe(fn func(T)) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers v to every subscriber registered at call time.
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	fns := make([]func(T), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of active subscribers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
