// Package state holds the subscription list every storefront container uses
// to tell its readers about a newly applied mutation.
package state

import "sync"

// Listener receives a snapshot of the container after a mutation.
type Listener[T any] func(T)

// Broadcaster is a per-container observer list. Listeners are called
// synchronously, in subscription order, on the goroutine that publishes.
type Broadcaster[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]Listener[T]
	order     []uint64
}

func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{listeners: make(map[uint64]Listener[T])}
}

// Subscribe registers fn and returns a func that removes it again.
// Calling the returned func more than once is harmless.
func (b *Broadcaster[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if _, ok := b.listeners[id]; !ok {
			return
		}

		delete(b.listeners, id)

		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers snapshot to every current listener.
func (b *Broadcaster[T]) Publish(snapshot T) {
	b.mu.Lock()
	fns := make([]Listener[T], 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.listeners[id])
	}
	b.mu.Unlock()

	// listeners may subscribe or unsubscribe from inside the callback
	for _, fn := range fns {
		fn(snapshot)
	}
}

func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.order)
}
