package state

import "sync"

// Value is a shared piece of application state with controlled mutation and
// subscriber notification. All UI-facing state (product list, cart, alert)
// lives in a Value rather than in package-level variables.
type Value[T any] struct {
	mu          sync.RWMutex
	current     T
	nextSub     int
	subscribers map[int]func(T)
}

// NewValue creates a Value holding the given initial state
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current:     initial,
		subscribers: make(map[int]func(T)),
	}
}

// Get returns the current state. For slice-typed values the returned header
// aliases the stored backing array, so Update closures must build a fresh
// slice instead of writing elements in place.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the state and notifies subscribers
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	v.current = next
	subs := v.snapshotSubscribers()
	v.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Update applies fn to the current state under the write lock and notifies
// subscribers with the result
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	v.current = fn(v.current)
	next := v.current
	subs := v.snapshotSubscribers()
	v.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
	return next
}

// Subscribe registers fn to be called after every mutation. The returned
// function cancels the subscription.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	id := v.nextSub
	v.nextSub++
	v.subscribers[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subscribers, id)
		v.mu.Unlock()
	}
}

// snapshotSubscribers must be called with the lock held
func (v *Value[T]) snapshotSubscribers() []func(T) {
	subs := make([]func(T), 0, len(v.subscribers))
	for _, fn := range v.subscribers {
		subs = append(subs, fn)
	}
	return subs
}
