// Package realtime fans out snapshots to live subscribers.
package realtime

import "sync"

// Broker delivers the most recent snapshot to every subscriber. Each
// subscriber has a one-slot mailbox; a publish replaces an unread snapshot
// instead of blocking.
type Broker[T any] struct {
	mu      sync.Mutex
	subs    map[chan T]struct{}
	last    T
	hasLast bool
	closed  bool
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{subs: make(map[chan T]struct{})}
}

// Subscribe registers a subscriber. The latest snapshot, if any, is queued
// immediately. Call the returned func to unsubscribe.
func (b *Broker[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, 1)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	if b.hasLast {
		ch <- b.last
	}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}
}

func (b *Broker[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.last = v
	b.hasLast = true
	for ch := range b.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// HasSnapshot reports whether anything has been published yet.
func (b *Broker[T]) HasSnapshot() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasLast
}

func (b *Broker[T]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close disconnects all subscribers. Later publishes are dropped.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
