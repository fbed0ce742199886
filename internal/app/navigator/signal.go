// Package navigator holds the facade that owns the current navigation tree
// and sequences every mutation: mutate, diff, publish, cancel removed
// results, notify lifecycle detach, emit the transition. All mutating
// methods belong on one goroutine (the host's UI scheduler); subscribers
// may attach from anywhere and receive immutable snapshots.
package navigator

import "sync"

// Signal is an observable cell. Writes happen on the navigator's write
// goroutine; Current and Subscribe are safe from any goroutine. Subscribers
// are notified in publication order with the emitted snapshot.
type Signal[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   []signalSub[T]
}

type signalSub[T any] struct {
	id int
	fn func(T)
}

// NewSignal creates a signal holding the initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Current returns the latest published value.
func (s *Signal[T]) Current() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Subscribe registers fn and immediately invokes it with the current value.
// The returned func removes the subscription and is idempotent.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, signalSub[T]{id: id, fn: fn})
	current := s.value
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// publish stores the value and notifies subscribers in registration order.
// Called only from the write goroutine, so publications never reorder.
func (s *Signal[T]) publish(value T) {
	s.mu.Lock()
	s.value = value
	subs := make([]signalSub[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(value)
	}
}
